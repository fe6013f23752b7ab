package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAllocation is the quantity of one stock item currently held by one
// user. At most one row exists per (user, item) pair; the row is created on
// first transfer and its quantity adjusted by later movements. There is no
// row for the central pool — that quantity is derived.
type StockAllocation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_item"`
	StockItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_item"`
	Quantity      int       `gorm:"not null;default:0"`
	AllocatedByID uuid.UUID `gorm:"type:uuid;not null"`
	AllocatedAt   time.Time

	User      *User      `gorm:"foreignKey:UserID"`
	StockItem *StockItem `gorm:"foreignKey:StockItemID"`
}
