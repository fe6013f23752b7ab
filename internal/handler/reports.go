package handler

import (
	"net/http"
	"strconv"

	"github.com/abdobody2040/PharmStockHub/internal/apierror"
	"github.com/abdobody2040/PharmStockHub/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Valuation godoc
// @Summary Inventory valuation grouped by category
// @Description Monetary value of all stock on hand (price x total quantity), aggregated per category.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ValuationResponse
// @Router /api/reports/valuation [get]
func (h *ReportsHandler) Valuation(c *gin.Context) {
	resp, err := h.svc.Valuation(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpiringPDF godoc
// @Summary Download the expiring-items report as PDF
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param days query int false "Window in days (default 30)"
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Router /api/reports/expiring.pdf [get]
func (h *ReportsHandler) ExpiringPDF(c *gin.Context) {
	days := defaultExpiringDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("days must be an integer"))
			return
		}
		days = parsed
	}
	path, err := h.svc.ExpiringPDF(c.Request.Context(), days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.FileAttachment(path, "expiring-items.pdf")
}
