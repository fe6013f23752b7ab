package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateStockItemRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=200"`
	CategoryID  string  `json:"category_id"  validate:"required,uuid"`
	SpecialtyID *string `json:"specialty_id" validate:"omitempty,uuid"`
	Quantity    int     `json:"quantity"     validate:"min=0"`
	PriceCents  int64   `json:"price_cents"  validate:"min=0"`
	// ExpiryDate in RFC 3339, e.g. "2027-03-01T00:00:00Z"
	ExpiryDate *string `json:"expiry_date"  validate:"omitempty"`
	UniqueCode *string `json:"unique_code"  validate:"omitempty,max=100"`
	ImageURL   *string `json:"image_url"`
	Notes      *string `json:"notes"`
}

type UpdateStockItemRequest struct {
	Name        string  `json:"name"         validate:"omitempty,min=2,max=200"`
	CategoryID  *string `json:"category_id"  validate:"omitempty,uuid"`
	SpecialtyID *string `json:"specialty_id" validate:"omitempty,uuid"`
	PriceCents  *int64  `json:"price_cents"  validate:"omitempty,min=0"`
	ExpiryDate  *string `json:"expiry_date"  validate:"omitempty"`
	UniqueCode  *string `json:"unique_code"  validate:"omitempty,max=100"`
	ImageURL    *string `json:"image_url"`
	Notes       *string `json:"notes"`
}

// AdjustQuantityRequest sets the item's TOTAL quantity to an absolute value
// (admin correction). The new total may not undercut existing allocations.
type AdjustQuantityRequest struct {
	Quantity int     `json:"quantity" validate:"min=0"`
	Reason   *string `json:"reason"`
}

// StockItemFilter captures the supported list query parameters.
type StockItemFilter struct {
	Name           string
	CategoryID     string
	SpecialtyID    string
	ExpiringWithin int // days; 0 = no expiry filter
	Page           int
	Limit          int
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type StockItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CategoryID  string  `json:"category_id"`
	Category    string  `json:"category,omitempty"`
	SpecialtyID *string `json:"specialty_id,omitempty"`
	Quantity    int     `json:"quantity"`
	// Available is the central (unallocated) portion of Quantity; only
	// populated by endpoints that resolve allocations.
	Available  *int    `json:"available,omitempty"`
	PriceCents int64   `json:"price_cents"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	UniqueCode *string `json:"unique_code,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	CreatedBy  string  `json:"created_by"`
	CreatedAt  string  `json:"created_at"`
}

type StockItemListResponse struct {
	Data  []StockItemResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
