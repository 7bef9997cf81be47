package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	leasingapp "github.com/rently/backend/internal/application/leasing"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// LeaseHandler handles lease agreement API endpoints
type LeaseHandler struct {
	BaseHandler
	leaseService *leasingapp.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService *leasingapp.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// CreateLeaseRequest represents a request to create a lease agreement
type CreateLeaseRequest struct {
	TenantID        string   `json:"tenant_id" binding:"required,uuid"`
	RentAmount      float64  `json:"rent_amount" binding:"required,gt=0"`
	StartDate       string   `json:"start_date" binding:"required"`
	EndDate         string   `json:"end_date" binding:"required"`
	Frequency       string   `json:"frequency" binding:"omitempty,leasefrequency"`
	SecurityDeposit *float64 `json:"security_deposit" binding:"omitempty,gt=0"`
	AdditionalTerms string   `json:"additional_terms"`
}

// ResolvedLeaseResponse pairs a lease with its date-derived display status
type ResolvedLeaseResponse struct {
	Lease  *leasing.LeaseAgreement `json:"lease"`
	Status leasing.DisplayStatus   `json:"status"`
}

// RegisterRoutes registers lease routes on the given group
func (h *LeaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leases := rg.Group("/leases")
	{
		leases.POST("", h.Create)
		leases.GET("/:id", h.GetByID)
		leases.POST("/:id/terminate", h.Terminate)
	}

	// Resolution is addressed by tenant because a tenant has at most one
	// active lease at a time.
	rg.GET("/tenants/:id/lease", h.ResolveForTenant)
}

// Create explicitly creates an active lease agreement
func (h *LeaseHandler) Create(c *gin.Context) {
	var req CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	frequency := leasing.FrequencyMonthly
	if req.Frequency != "" {
		frequency = leasing.PaymentFrequency(req.Frequency)
	}

	input := leasingapp.CreateLeaseInput{
		TenantID:        tenantID,
		RentAmount:      toDecimal(req.RentAmount),
		StartDate:       startDate,
		EndDate:         endDate,
		Frequency:       frequency,
		AdditionalTerms: req.AdditionalTerms,
	}
	if req.SecurityDeposit != nil {
		input.SecurityDeposit = toDecimalPtr(*req.SecurityDeposit)
	}

	lease, err := h.leaseService.CreateLease(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, lease)
}

// GetByID returns a single lease agreement
func (h *LeaseHandler) GetByID(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	lease, err := h.leaseService.GetLease(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lease)
}

// Terminate ends a lease agreement early
func (h *LeaseHandler) Terminate(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	lease, err := h.leaseService.TerminateLease(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lease)
}

// ResolveForTenant returns the tenant's current lease and display status,
// provisioning a lease from the tenant's rent terms when none exists.
func (h *LeaseHandler) ResolveForTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	lease, status, err := h.leaseService.ResolveActiveLease(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ResolvedLeaseResponse{Lease: lease, Status: status})
}
