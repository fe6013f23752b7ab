package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// MoveStockRequest transfers quantity of one stock item from a source holder
// to a destination user. FromUserID nil means the central pool is the source.
type MoveStockRequest struct {
	StockItemID string  `json:"stock_item_id" validate:"required,uuid"`
	FromUserID  *string `json:"from_user_id"  validate:"omitempty,uuid"`
	ToUserID    string  `json:"to_user_id"    validate:"required,uuid"`
	Quantity    int     `json:"quantity"      validate:"required,gt=0"`
	Notes       *string `json:"notes"         validate:"omitempty,max=500"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type MovementResponse struct {
	ID          string  `json:"id"`
	StockItemID string  `json:"stock_item_id"`
	StockItem   string  `json:"stock_item,omitempty"`
	FromUserID  *string `json:"from_user_id,omitempty"`
	ToUserID    string  `json:"to_user_id"`
	Quantity    int     `json:"quantity"`
	Notes       *string `json:"notes,omitempty"`
	MovedBy     string  `json:"moved_by"`
	CreatedAt   string  `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type AllocationResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	User        string `json:"user,omitempty"`
	StockItemID string `json:"stock_item_id"`
	StockItem   string `json:"stock_item,omitempty"`
	Quantity    int    `json:"quantity"`
	AllocatedBy string `json:"allocated_by"`
	AllocatedAt string `json:"allocated_at"`
}
