package dto

import "github.com/shopspring/decimal"

// CategoryValuation is the inventory value of one category, in major
// currency units (stored cents divided by 100).
type CategoryValuation struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Items      int             `json:"items"`
	Units      int             `json:"units"`
	Value      decimal.Decimal `json:"value"`
}

type ValuationResponse struct {
	Categories []CategoryValuation `json:"categories"`
	Total      decimal.Decimal     `json:"total"`
}
