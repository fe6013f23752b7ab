package handler

import (
	"net/http"
	"strconv"

	"github.com/abdobody2040/PharmStockHub/internal/apierror"
	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/middleware"
	"github.com/abdobody2040/PharmStockHub/internal/repository"
	"github.com/abdobody2040/PharmStockHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovementsHandler struct{ svc service.MovementService }

func NewMovementsHandler(svc service.MovementService) *MovementsHandler {
	return &MovementsHandler{svc: svc}
}

// Move godoc
// @Summary Move stock between holders
// @Description Transfers quantity of a stock item from the central pool (or a user) to a user, atomically, and appends an immutable movement record.
// @Tags movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MoveStockRequest true "Transfer"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/movements [post]
func (h *MovementsHandler) Move(c *gin.Context) {
	var req dto.MoveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	movedBy, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.MoveStock(c.Request.Context(), movedBy, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List stock movements
// @Description Returns the movement audit trail, newest first, optionally filtered by stock item or by user (matching source or destination).
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Param stock_item_id query string false "Stock item UUID"
// @Param user_id query string false "User UUID (matches from or to)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.MovementListResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/movements [get]
func (h *MovementsHandler) List(c *gin.Context) {
	var filter repository.MovementFilter

	if raw := c.Query("stock_item_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid stock_item_id"))
			return
		}
		filter.StockItemID = &id
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid user_id"))
			return
		}
		filter.UserID = &id
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
