package handler

import (
	"net/http"
	"strconv"

	"github.com/abdobody2040/PharmStockHub/internal/apierror"
	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/middleware"
	"github.com/abdobody2040/PharmStockHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultExpiringDays = 30

type StockItemsHandler struct{ svc service.StockService }

func NewStockItemsHandler(svc service.StockService) *StockItemsHandler {
	return &StockItemsHandler{svc: svc}
}

// Create godoc
// @Summary Register a stock item
// @Description Creates a stock item. Its full quantity starts in the central pool.
// @Tags stock-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateStockItemRequest true "Stock item"
// @Success 201 {object} dto.StockItemResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/stock-items [post]
func (h *StockItemsHandler) Create(c *gin.Context) {
	var req dto.CreateStockItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	createdBy, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List stock items
// @Tags stock-items
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring match"
// @Param category_id query string false "Category UUID"
// @Param specialty_id query string false "Specialty UUID"
// @Param expiring_within query int false "Only items expiring within N days"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.StockItemListResponse
// @Router /api/stock-items [get]
func (h *StockItemsHandler) List(c *gin.Context) {
	filter := dto.StockItemFilter{
		Name:        c.Query("name"),
		CategoryID:  c.Query("category_id"),
		SpecialtyID: c.Query("specialty_id"),
	}
	filter.ExpiringWithin, _ = strconv.Atoi(c.Query("expiring_within"))
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Expiring godoc
// @Summary List stock items expiring soon
// @Description Returns items whose expiry date falls between now and now+days. Items without an expiry date are never included.
// @Tags stock-items
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (default 30)"
// @Success 200 {array} dto.StockItemResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/stock-items/expiring [get]
func (h *StockItemsHandler) Expiring(c *gin.Context) {
	days := defaultExpiringDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("days must be an integer"))
			return
		}
		days = parsed
	}
	resp, err := h.svc.GetExpiring(c.Request.Context(), days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockItemsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockItemsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateStockItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockItemsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustQuantity godoc
// @Summary Correct a stock item's total quantity
// @Description Sets the absolute total. Rejected if the new total would undercut quantities already allocated to users.
// @Tags stock-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Stock item UUID"
// @Param body body dto.AdjustQuantityRequest true "New total and reason"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/stock-items/{id}/adjust [post]
func (h *StockItemsHandler) AdjustQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.AdjustQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	adjustedBy, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.AdjustQuantity(c.Request.Context(), adjustedBy, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
