package repository

import (
	"context"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValuationRow is one line of the per-category inventory valuation aggregate.
type ValuationRow struct {
	CategoryID uuid.UUID
	Category   string
	Items      int
	Units      int
	TotalCents int64
}

// StockItemRepository defines the data access contract for stock items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type StockItemRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	List(ctx context.Context, filter dto.StockItemFilter) ([]model.StockItem, int64, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]model.StockItem, error)
	Update(ctx context.Context, item *model.StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Valuation(ctx context.Context) ([]ValuationRow, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDTx holds a row lock on the item until the transaction ends.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error)
	SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockItemRepo struct{ db *gorm.DB }

func NewStockItemRepository(db *gorm.DB) StockItemRepository { return &stockItemRepo{db: db} }

func (r *stockItemRepo) Create(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).Preload("Category").First(&item, id).Error
	return &item, err
}

func (r *stockItemRepo) List(ctx context.Context, filter dto.StockItemFilter) ([]model.StockItem, int64, error) {
	var items []model.StockItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockItem{}).Preload("Category")

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SpecialtyID != "" {
		q = q.Where("specialty_id = ?", filter.SpecialtyID)
	}
	if filter.ExpiringWithin > 0 {
		now := time.Now()
		q = q.Where("expiry_date IS NOT NULL AND expiry_date BETWEEN ? AND ?",
			now, now.AddDate(0, 0, filter.ExpiringWithin))
	}

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

	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *stockItemRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("expiry_date IS NOT NULL AND expiry_date BETWEEN ? AND ?", from, to).
		Order("expiry_date ASC").
		Find(&items).Error
	return items, err
}

func (r *stockItemRepo) Update(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *stockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StockItem{}, "id = ?", id).Error
}

func (r *stockItemRepo) Valuation(ctx context.Context) ([]ValuationRow, error) {
	var rows []ValuationRow
	err := r.db.WithContext(ctx).
		Table("stock_items").
		Select(`categories.id AS category_id,
		        categories.name AS category,
		        COUNT(stock_items.id) AS items,
		        COALESCE(SUM(stock_items.quantity), 0) AS units,
		        COALESCE(SUM(stock_items.quantity * stock_items.price_cents), 0) AS total_cents`).
		Joins("JOIN categories ON categories.id = stock_items.category_id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

// FindByIDTx locks the item row (SELECT ... FOR UPDATE) so concurrent
// movements and quantity corrections against the same item serialize on it.
// The central pool is derived from the allocation sum and has no row of its
// own to guard, so the item row is the serialization point.
func (r *stockItemRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error
	return &item, err
}

func (r *stockItemRepo) SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.StockItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func (r *stockItemRepo) DB() *gorm.DB { return r.db }
