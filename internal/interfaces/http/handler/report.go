package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rently/backend/internal/application/report"
)

// ReportHandler handles portfolio reporting API endpoints
type ReportHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *report.DashboardService) *ReportHandler {
	return &ReportHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers report routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/recent-activity", h.RecentActivity)
		reports.GET("/revenue-by-landlord", h.RevenueByLandlord)
		reports.GET("/payment-statistics", h.PaymentStatistics)
		reports.GET("/payment-totals", h.PaymentTotals)
	}
}

// Dashboard returns the portfolio headline figures
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// RecentActivity returns the merged feed of recent payments and leases.
// An optional limit query parameter caps the feed; it defaults to ten.
func (h *ReportHandler) RecentActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.dashboardService.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// RevenueByLandlord returns collected totals per landlord
func (h *ReportHandler) RevenueByLandlord(c *gin.Context) {
	revenue, err := h.dashboardService.RevenueByLandlord(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, revenue)
}

// PaymentStatistics returns ledger-wide collection figures
func (h *ReportHandler) PaymentStatistics(c *gin.Context) {
	overview, err := h.dashboardService.PaymentStatistics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, overview)
}

// PaymentTotals returns sum, count, and mean of payments within an optional
// inclusive date range given as period_start / period_end (YYYY-MM-DD)
func (h *ReportHandler) PaymentTotals(c *gin.Context) {
	var start, end *time.Time
	if raw := c.Query("period_start"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "period_start must be formatted as YYYY-MM-DD")
			return
		}
		start = &parsed
	}
	if raw := c.Query("period_end"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "period_end must be formatted as YYYY-MM-DD")
			return
		}
		end = &parsed
	}

	stats, err := h.dashboardService.PaymentStatsInPeriod(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}
