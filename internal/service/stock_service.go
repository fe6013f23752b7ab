package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/model"
	"github.com/abdobody2040/PharmStockHub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService manages the stock item catalog. Quantity only changes through
// AdjustQuantity (admin correction) — transfers between holders go through
// MovementService.
type StockService interface {
	Create(ctx context.Context, createdBy uuid.UUID, req dto.CreateStockItemRequest) (*dto.StockItemResponse, error)
	List(ctx context.Context, filter dto.StockItemFilter) (*dto.StockItemListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.StockItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateStockItemRequest) (*dto.StockItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetExpiring(ctx context.Context, days int) ([]dto.StockItemResponse, error)
	AdjustQuantity(ctx context.Context, adjustedBy uuid.UUID, id uuid.UUID, req dto.AdjustQuantityRequest) (*dto.StockItemResponse, error)
}

type stockService struct {
	items       repository.StockItemRepository
	allocations repository.AllocationRepository
	categories  repository.CategoryRepository
	specialties repository.SpecialtyRepository
}

func NewStockService(
	items repository.StockItemRepository,
	allocations repository.AllocationRepository,
	categories repository.CategoryRepository,
	specialties repository.SpecialtyRepository,
) StockService {
	return &stockService{
		items:       items,
		allocations: allocations,
		categories:  categories,
		specialties: specialties,
	}
}

func (s *stockService) Create(ctx context.Context, createdBy uuid.UUID, req dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: category_id is not a valid UUID", ErrInvalidArgument)
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrInvalidArgument, categoryID)
	}

	item := &model.StockItem{
		Name:        req.Name,
		CategoryID:  categoryID,
		Quantity:    req.Quantity,
		PriceCents:  req.PriceCents,
		UniqueCode:  req.UniqueCode,
		ImageURL:    req.ImageURL,
		Notes:       req.Notes,
		CreatedByID: createdBy,
	}

	if req.SpecialtyID != nil {
		specialtyID, err := uuid.Parse(*req.SpecialtyID)
		if err != nil {
			return nil, fmt.Errorf("%w: specialty_id is not a valid UUID", ErrInvalidArgument)
		}
		if _, err := s.specialties.FindByID(ctx, specialtyID); err != nil {
			return nil, fmt.Errorf("%w: specialty %s does not exist", ErrInvalidArgument, specialtyID)
		}
		item.SpecialtyID = &specialtyID
	}

	if req.ExpiryDate != nil {
		expiry, err := time.Parse(time.RFC3339, *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be RFC 3339", ErrInvalidArgument)
		}
		item.ExpiryDate = &expiry
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return stockItemToResponse(item), nil
}

func (s *stockService) List(ctx context.Context, filter dto.StockItemFilter) (*dto.StockItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockItemResponse, 0, len(items))
	for i := range items {
		data = append(data, *stockItemToResponse(&items[i]))
	}
	return &dto.StockItemListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *stockService) GetByID(ctx context.Context, id uuid.UUID) (*dto.StockItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: stock item %s", ErrNotFound, id)
		}
		return nil, err
	}
	resp := stockItemToResponse(item)

	allocated, err := s.allocations.SumForItemTx(s.items.DB(), id)
	if err != nil {
		return nil, err
	}
	available := item.Quantity - allocated
	resp.Available = &available
	return resp, nil
}

func (s *stockService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: stock item %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: category_id is not a valid UUID", ErrInvalidArgument)
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, fmt.Errorf("%w: category %s does not exist", ErrInvalidArgument, categoryID)
		}
		item.CategoryID = categoryID
	}
	if req.SpecialtyID != nil {
		specialtyID, err := uuid.Parse(*req.SpecialtyID)
		if err != nil {
			return nil, fmt.Errorf("%w: specialty_id is not a valid UUID", ErrInvalidArgument)
		}
		item.SpecialtyID = &specialtyID
	}
	if req.PriceCents != nil {
		item.PriceCents = *req.PriceCents
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse(time.RFC3339, *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be RFC 3339", ErrInvalidArgument)
		}
		item.ExpiryDate = &expiry
	}
	if req.UniqueCode != nil {
		item.UniqueCode = req.UniqueCode
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return stockItemToResponse(item), nil
}

func (s *stockService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: stock item %s", ErrNotFound, id)
		}
		return err
	}
	if item.ImageURL != nil {
		// Image blobs live in external storage keyed by this URL; deletion of
		// the row orphans the blob, which the storage layer garbage-collects.
		log.Info().Str("item_id", id.String()).Str("image_url", *item.ImageURL).Msg("stock item deleted, image reference released")
	}
	return s.items.Delete(ctx, id)
}

// GetExpiring returns items whose expiry timestamp falls within
// [now, now + days]. days must be positive; no upper bound is enforced.
func (s *stockService) GetExpiring(ctx context.Context, days int) ([]dto.StockItemResponse, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be a positive integer, got %d", ErrInvalidArgument, days)
	}
	now := time.Now()
	items, err := s.items.ListExpiring(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *stockItemToResponse(&items[i]))
	}
	return resp, nil
}

// AdjustQuantity sets an item's total quantity to an absolute value (admin
// correction). The new total may not undercut the sum of allocations, which
// would make the derived central pool negative.
func (s *stockService) AdjustQuantity(ctx context.Context, adjustedBy uuid.UUID, id uuid.UUID, req dto.AdjustQuantityRequest) (*dto.StockItemResponse, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	}

	var item *model.StockItem
	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		var err error
		item, err = s.items.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: stock item %s", ErrNotFound, id)
			}
			return err
		}

		allocated, err := s.allocations.SumForItemTx(tx, id)
		if err != nil {
			return err
		}
		if req.Quantity < allocated {
			return fmt.Errorf("%w: %d unit(s) of %q are allocated to users, cannot set total below that",
				ErrInvalidArgument, allocated, item.Name)
		}

		if err := s.items.SetQuantityTx(tx, id, req.Quantity); err != nil {
			return err
		}
		item.Quantity = req.Quantity
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}
	log.Info().
		Str("item_id", id.String()).
		Str("adjusted_by", adjustedBy.String()).
		Int("new_quantity", req.Quantity).
		Str("reason", reason).
		Msg("stock quantity corrected")

	return stockItemToResponse(item), nil
}

func stockItemToResponse(item *model.StockItem) *dto.StockItemResponse {
	resp := &dto.StockItemResponse{
		ID:         item.ID.String(),
		Name:       item.Name,
		CategoryID: item.CategoryID.String(),
		Quantity:   item.Quantity,
		PriceCents: item.PriceCents,
		UniqueCode: item.UniqueCode,
		ImageURL:   item.ImageURL,
		Notes:      item.Notes,
		CreatedBy:  item.CreatedByID.String(),
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
	}
	if item.Category != nil {
		resp.Category = item.Category.Name
	}
	if item.SpecialtyID != nil {
		s := item.SpecialtyID.String()
		resp.SpecialtyID = &s
	}
	if item.ExpiryDate != nil {
		e := item.ExpiryDate.Format(time.RFC3339)
		resp.ExpiryDate = &e
	}
	return resp
}
