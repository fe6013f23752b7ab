package repository

import (
	"context"

	"github.com/abdobody2040/PharmStockHub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementFilter defines filters for listing stock movements.
type MovementFilter struct {
	StockItemID *uuid.UUID
	UserID      *uuid.UUID // matches source OR destination
	Page        int
	Limit       int
}

// MovementRepository is append-only: movements are the audit trail, so the
// interface deliberately has no update or delete methods.
type MovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]model.StockMovement, int64, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter MovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Preload("StockItem").Preload("FromUser").Preload("ToUser")
	if filter.StockItemID != nil {
		q = q.Where("stock_item_id = ?", *filter.StockItemID)
	}
	if filter.UserID != nil {
		q = q.Where("from_user_id = ? OR to_user_id = ?", *filter.UserID, *filter.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movements []model.StockMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}
