package handler

import (
	"net/http"

	"github.com/abdobody2040/PharmStockHub/internal/apierror"
	"github.com/abdobody2040/PharmStockHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AllocationsHandler struct{ svc service.MovementService }

func NewAllocationsHandler(svc service.MovementService) *AllocationsHandler {
	return &AllocationsHandler{svc: svc}
}

// List godoc
// @Summary List per-user stock allocations
// @Description Returns current holdings (quantity > 0), optionally for a single user.
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Filter by holder UUID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/allocations [get]
func (h *AllocationsHandler) List(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid userId"))
			return
		}
		userID = &id
	}
	resp, err := h.svc.ListAllocations(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
