package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/model"
	"github.com/abdobody2040/PharmStockHub/internal/repository"
	"github.com/abdobody2040/PharmStockHub/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementService is the stock ledger: it owns the only code path that may
// change allocation balances, and appends an immutable StockMovement row for
// every transfer.
type MovementService interface {
	MoveStock(ctx context.Context, movedBy uuid.UUID, req dto.MoveStockRequest) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error)
	ListAllocations(ctx context.Context, userID *uuid.UUID) ([]dto.AllocationResponse, error)
}

type movementService struct {
	items       repository.StockItemRepository
	allocations repository.AllocationRepository
	movements   repository.MovementRepository
	users       repository.UserRepository
	dispatcher  *worker.Dispatcher
}

func NewMovementService(
	items repository.StockItemRepository,
	allocations repository.AllocationRepository,
	movements repository.MovementRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) MovementService {
	return &movementService{
		items:       items,
		allocations: allocations,
		movements:   movements,
		users:       users,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// availableAt resolves the quantity the source holds. The central pool is
// never stored as a row — it is item.Quantity minus the sum of allocations.
// Both the pre-mutation check and the mutation itself go through this one
// resolver so the two can never diverge.
func (s *movementService) availableAt(tx *gorm.DB, item *model.StockItem, fromUserID *uuid.UUID) (int, error) {
	if fromUserID == nil {
		allocated, err := s.allocations.SumForItemTx(tx, item.ID)
		if err != nil {
			return 0, err
		}
		return item.Quantity - allocated, nil
	}
	alloc, err := s.allocations.FindTx(tx, *fromUserID, item.ID)
	if err != nil {
		return 0, err
	}
	if alloc == nil {
		return 0, nil
	}
	return alloc.Quantity, nil
}

// MoveStock atomically transfers quantity from the source holder (central
// pool when FromUserID is nil) to the destination user. Either all of the
// allocation changes and the movement row apply, or none do.
func (s *movementService) MoveStock(ctx context.Context, movedBy uuid.UUID, req dto.MoveStockRequest) (*dto.MovementResponse, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer, got %d", ErrInvalidArgument, req.Quantity)
	}

	itemID, err := uuid.Parse(req.StockItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: stock_item_id is not a valid UUID", ErrInvalidArgument)
	}
	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: to_user_id is not a valid UUID", ErrInvalidArgument)
	}
	var fromUserID *uuid.UUID
	if req.FromUserID != nil {
		id, err := uuid.Parse(*req.FromUserID)
		if err != nil {
			return nil, fmt.Errorf("%w: from_user_id is not a valid UUID", ErrInvalidArgument)
		}
		fromUserID = &id
	}

	// Destination must resolve to an existing user (pre-flight, outside TX)
	toUser, err := s.users.FindByID(ctx, toUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: destination user %s does not exist", ErrInvalidArgument, toUserID)
	}

	var mov model.StockMovement
	var itemName string
	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		// FindByIDTx takes a row lock, so concurrent movements against the
		// same item serialize and the allocation sum below cannot go stale.
		item, err := s.items.FindByIDTx(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: stock item %s", ErrNotFound, itemID)
			}
			return err
		}
		itemName = item.Name

		available, err := s.availableAt(tx, item, fromUserID)
		if err != nil {
			return err
		}
		if req.Quantity > available {
			holder := "central inventory"
			if fromUserID != nil {
				holder = "user " + fromUserID.String()
			}
			return fmt.Errorf("%w: %s holds %d of %q, requested %d",
				ErrInsufficientStock, holder, available, item.Name, req.Quantity)
		}

		// Decrement the source. The central pool has no row — increasing the
		// destination's allocation shrinks the derived pool by itself.
		if fromUserID != nil {
			rows, err := s.allocations.DecrementTx(tx, *fromUserID, itemID, req.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				// A concurrent movement spent the balance between the read
				// and the guarded UPDATE.
				return fmt.Errorf("%w: user %s no longer holds %d of %q",
					ErrInsufficientStock, fromUserID, req.Quantity, item.Name)
			}
		}

		if err := s.allocations.IncrementTx(tx, toUserID, itemID, movedBy, req.Quantity); err != nil {
			return err
		}

		mov = model.StockMovement{
			StockItemID: itemID,
			FromUserID:  fromUserID,
			ToUserID:    toUserID,
			Quantity:    req.Quantity,
			Notes:       req.Notes,
			MovedByID:   movedBy,
			CreatedAt:   time.Now(),
		}
		return s.movements.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Notify the receiving rep (best-effort — fire & forget)
	if s.dispatcher != nil && toUser.Email != nil && *toUser.Email != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: *toUser.Email,
			Subject: fmt.Sprintf("Stock received: %s", itemName),
			Body:    fmt.Sprintf("%d unit(s) of %q were transferred to you.", req.Quantity, itemName),
		})
	}

	resp := movementToResponse(&mov)
	resp.StockItem = itemName
	return resp, nil
}

func (s *movementService) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		r := movementToResponse(&movements[i])
		if movements[i].StockItem != nil {
			r.StockItem = movements[i].StockItem.Name
		}
		items = append(items, *r)
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *movementService) ListAllocations(ctx context.Context, userID *uuid.UUID) ([]dto.AllocationResponse, error) {
	var allocs []model.StockAllocation
	var err error
	if userID != nil {
		allocs, err = s.allocations.ListByUser(ctx, *userID)
	} else {
		allocs, err = s.allocations.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AllocationResponse, 0, len(allocs))
	for i := range allocs {
		a := &allocs[i]
		r := dto.AllocationResponse{
			ID:          a.ID.String(),
			UserID:      a.UserID.String(),
			StockItemID: a.StockItemID.String(),
			Quantity:    a.Quantity,
			AllocatedBy: a.AllocatedByID.String(),
			AllocatedAt: a.AllocatedAt.Format(time.RFC3339),
		}
		if a.User != nil {
			r.User = a.User.Name
		}
		if a.StockItem != nil {
			r.StockItem = a.StockItem.Name
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func movementToResponse(m *model.StockMovement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:          m.ID.String(),
		StockItemID: m.StockItemID.String(),
		ToUserID:    m.ToUserID.String(),
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		MovedBy:     m.MovedByID.String(),
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.FromUserID != nil {
		from := m.FromUserID.String()
		resp.FromUserID = &from
	}
	return resp
}
