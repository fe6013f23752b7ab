package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records each quantity transfer between holders of a stock
// item. FromUserID nil means the source is the central (unallocated) pool.
// Rows are append-only: created once inside the movement transaction and
// never updated or deleted — this table is the audit trail.
type StockMovement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StockItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromUserID  *uuid.UUID `gorm:"type:uuid;index"`
	ToUserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity    int        `gorm:"not null"`
	Notes       *string
	MovedByID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	StockItem *StockItem `gorm:"foreignKey:StockItemID"`
	FromUser  *User      `gorm:"foreignKey:FromUserID"`
	ToUser    *User      `gorm:"foreignKey:ToUserID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
