package repository

import (
	"context"
	"errors"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationRepository owns StockAllocation rows. Balance mutations only
// exist as Tx variants: the movement transaction is the single authorized
// path for changing who holds a stock item.
type AllocationRepository interface {
	List(ctx context.Context) ([]model.StockAllocation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.StockAllocation, error)

	// Used inside transactions — callers must pass the tx instance
	SumForItemTx(tx *gorm.DB, itemID uuid.UUID) (int, error)
	FindTx(tx *gorm.DB, userID, itemID uuid.UUID) (*model.StockAllocation, error)
	// DecrementTx reduces a holder's balance; the UPDATE is guarded by
	// quantity >= qty so a concurrent movement cannot overdraw the row.
	// Returns gorm.ErrRecordNotFound semantics via rows-affected = 0.
	DecrementTx(tx *gorm.DB, userID, itemID uuid.UUID, qty int) (int64, error)
	// IncrementTx adds to the destination's balance, creating the row on
	// first transfer.
	IncrementTx(tx *gorm.DB, userID, itemID, allocatedBy uuid.UUID, qty int) error
}

type allocationRepo struct{ db *gorm.DB }

func NewAllocationRepository(db *gorm.DB) AllocationRepository { return &allocationRepo{db: db} }

func (r *allocationRepo) List(ctx context.Context) ([]model.StockAllocation, error) {
	var allocs []model.StockAllocation
	err := r.db.WithContext(ctx).
		Preload("User").Preload("StockItem").
		Where("quantity > 0").
		Order("allocated_at DESC").
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.StockAllocation, error) {
	var allocs []model.StockAllocation
	err := r.db.WithContext(ctx).
		Preload("User").Preload("StockItem").
		Where("user_id = ? AND quantity > 0", userID).
		Order("allocated_at DESC").
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) SumForItemTx(tx *gorm.DB, itemID uuid.UUID) (int, error) {
	var sum int64
	err := tx.Model(&model.StockAllocation{}).
		Where("stock_item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return int(sum), err
}

func (r *allocationRepo) FindTx(tx *gorm.DB, userID, itemID uuid.UUID) (*model.StockAllocation, error) {
	var a model.StockAllocation
	err := tx.Where("user_id = ? AND stock_item_id = ?", userID, itemID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *allocationRepo) DecrementTx(tx *gorm.DB, userID, itemID uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.StockAllocation{}).
		Where("user_id = ? AND stock_item_id = ? AND quantity >= ?", userID, itemID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *allocationRepo) IncrementTx(tx *gorm.DB, userID, itemID, allocatedBy uuid.UUID, qty int) error {
	res := tx.Model(&model.StockAllocation{}).
		Where("user_id = ? AND stock_item_id = ?", userID, itemID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return tx.Create(&model.StockAllocation{
		UserID:        userID,
		StockItemID:   itemID,
		Quantity:      qty,
		AllocatedByID: allocatedBy,
		AllocatedAt:   time.Now(),
	}).Error
}
