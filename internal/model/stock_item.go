package model

import (
	"time"

	"github.com/google/uuid"
)

// StockItem is a promotional product (samples, giveaways, printed material)
// tracked by the company. Quantity is the TOTAL across all holders — the
// portion not covered by allocations is the central (unallocated) pool.
// Invariant: Quantity >= 0 and sum(allocations) <= Quantity.
type StockItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"index;not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	// SpecialtyID targets the item at one specialty; nil = all specialties
	SpecialtyID *uuid.UUID `gorm:"type:uuid;index"`
	Quantity    int        `gorm:"not null;default:0"`
	// PriceCents stores the unit price in minor currency units
	PriceCents int64      `gorm:"not null;default:0"`
	ExpiryDate *time.Time `gorm:"index"`
	// UniqueCode is an optional batch / serial identifier
	UniqueCode  *string `gorm:"uniqueIndex"`
	ImageURL    *string
	Notes       *string
	CreatedByID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category  *Category  `gorm:"foreignKey:CategoryID"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID"`
	CreatedBy *User      `gorm:"foreignKey:CreatedByID"`
}
