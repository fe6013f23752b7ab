package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/infra"
	"github.com/abdobody2040/PharmStockHub/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService produces read-only aggregates over the stock tables.
type ReportService interface {
	Valuation(ctx context.Context) (*dto.ValuationResponse, error)
	// ExpiringPDF renders the expiring-items report and returns the file path.
	ExpiringPDF(ctx context.Context, days int) (string, error)
}

type reportService struct {
	items       repository.StockItemRepository
	storagePath string
}

func NewReportService(items repository.StockItemRepository, storagePath string) ReportService {
	return &reportService{items: items, storagePath: storagePath}
}

var centsPerUnit = decimal.NewFromInt(100)

func (s *reportService) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	rows, err := s.items.Valuation(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ValuationResponse{
		Categories: make([]dto.CategoryValuation, 0, len(rows)),
		Total:      decimal.Zero,
	}
	for _, row := range rows {
		value := decimal.NewFromInt(row.TotalCents).Div(centsPerUnit)
		resp.Categories = append(resp.Categories, dto.CategoryValuation{
			CategoryID: row.CategoryID.String(),
			Category:   row.Category,
			Items:      row.Items,
			Units:      row.Units,
			Value:      value,
		})
		resp.Total = resp.Total.Add(value)
	}
	return resp, nil
}

func (s *reportService) ExpiringPDF(ctx context.Context, days int) (string, error) {
	if days <= 0 {
		return "", fmt.Errorf("%w: days must be a positive integer, got %d", ErrInvalidArgument, days)
	}
	now := time.Now()
	items, err := s.items.ListExpiring(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		return "", err
	}
	return infra.GenerateExpiryReportPDF(items, days, s.storagePath)
}
