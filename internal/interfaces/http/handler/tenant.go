package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	leasingapp "github.com/rently/backend/internal/application/leasing"
	lettingapp "github.com/rently/backend/internal/application/letting"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant-related API endpoints
type TenantHandler struct {
	BaseHandler
	tenantService  *lettingapp.TenantService
	leaseService   *leasingapp.LeaseService
	paymentService *leasingapp.PaymentService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(
	tenantService *lettingapp.TenantService,
	leaseService *leasingapp.LeaseService,
	paymentService *leasingapp.PaymentService,
) *TenantHandler {
	return &TenantHandler{
		tenantService:  tenantService,
		leaseService:   leaseService,
		paymentService: paymentService,
	}
}

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	FirstName      string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string   `json:"last_name" binding:"required,min=1,max=100"`
	Email          string   `json:"email" binding:"required,email,max=200"`
	Phone          string   `json:"phone" binding:"max=50"`
	Address        string   `json:"address" binding:"max=500"`
	WorkPlace      string   `json:"work_place" binding:"max=200"`
	WorkAddress    string   `json:"work_address" binding:"max=500"`
	NextOfKinName  string   `json:"next_of_kin_name" binding:"max=200"`
	NextOfKinPhone string   `json:"next_of_kin_phone" binding:"max=50"`
	IDDocument     string   `json:"id_document"`
	MonthlyRent    *float64 `json:"monthly_rent" binding:"omitempty,gt=0"`
	StartDate      *string  `json:"start_date"`
	DurationMonths *int     `json:"duration_months" binding:"omitempty,min=1"`
	PropertyID     *string  `json:"property_id" binding:"omitempty,uuid"`
}

// UpdateTenantRequest represents a partial tenant update
type UpdateTenantRequest struct {
	Phone          *string  `json:"phone" binding:"omitempty,max=50"`
	Address        *string  `json:"address" binding:"omitempty,max=500"`
	WorkPlace      *string  `json:"work_place" binding:"omitempty,max=200"`
	WorkAddress    *string  `json:"work_address" binding:"omitempty,max=500"`
	NextOfKinName  *string  `json:"next_of_kin_name" binding:"omitempty,max=200"`
	NextOfKinPhone *string  `json:"next_of_kin_phone" binding:"omitempty,max=50"`
	IDDocument     *string  `json:"id_document"`
	MonthlyRent    *float64 `json:"monthly_rent" binding:"omitempty,gt=0"`
	StartDate      *string  `json:"start_date"`
	DurationMonths *int     `json:"duration_months" binding:"omitempty,min=1"`
	PropertyID     *string  `json:"property_id" binding:"omitempty,uuid"`
}

// PaymentInfoResponse bundles a tenant's lease, ledger and balance. The
// lease is provisioned on first read when the tenant carries rent terms.
type PaymentInfoResponse struct {
	Lease       *leasing.LeaseAgreement `json:"lease"`
	Status      leasing.DisplayStatus   `json:"status"`
	Payments    []leasing.Payment       `json:"payments"`
	TotalPaid   decimal.Decimal         `json:"total_paid"`
	Outstanding decimal.Decimal         `json:"outstanding"`
}

// RegisterRoutes registers tenant routes on the given group
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("", h.List)
		tenants.GET("/:id", h.GetByID)
		tenants.PUT("/:id", h.Update)
		tenants.DELETE("/:id", h.Delete)
		tenants.GET("/:id/payment-info", h.PaymentInfo)
	}
}

// Create registers a new tenant
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := lettingapp.CreateTenantInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		WorkPlace:      req.WorkPlace,
		WorkAddress:    req.WorkAddress,
		NextOfKinName:  req.NextOfKinName,
		NextOfKinPhone: req.NextOfKinPhone,
		IDDocument:     req.IDDocument,
		DurationMonths: req.DurationMonths,
	}
	if req.MonthlyRent != nil {
		input.MonthlyRent = toDecimalPtr(*req.MonthlyRent)
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		input.StartDate = &start
	}
	if req.PropertyID != nil {
		propertyID, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			h.BadRequest(c, "Invalid property ID format")
			return
		}
		input.PropertyID = &propertyID
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tenant)
}

// List returns tenants annotated with their current lease display status
func (h *TenantHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		filter.Filters["property_id"] = propertyID
	}

	tenants, err := h.tenantService.ListTenants(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenants)
}

// GetByID returns a single tenant
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Update applies a partial update to a tenant
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := lettingapp.UpdateTenantInput{
		Phone:          req.Phone,
		Address:        req.Address,
		WorkPlace:      req.WorkPlace,
		WorkAddress:    req.WorkAddress,
		NextOfKinName:  req.NextOfKinName,
		NextOfKinPhone: req.NextOfKinPhone,
		IDDocument:     req.IDDocument,
		DurationMonths: req.DurationMonths,
	}
	if req.MonthlyRent != nil {
		input.MonthlyRent = toDecimalPtr(*req.MonthlyRent)
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		input.StartDate = &start
	}
	if req.PropertyID != nil {
		propertyID, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			h.BadRequest(c, "Invalid property ID format")
			return
		}
		input.PropertyID = &propertyID
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Delete removes a tenant record
func (h *TenantHandler) Delete(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), tenantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// PaymentInfo returns the tenant's lease, payments and outstanding balance.
// Reading it provisions a lease from the tenant's rent terms when none
// exists yet.
func (h *TenantHandler) PaymentInfo(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	ctx := c.Request.Context()
	info := PaymentInfoResponse{
		Payments:    []leasing.Payment{},
		TotalPaid:   decimal.Zero,
		Outstanding: decimal.Zero,
	}

	lease, status, err := h.leaseService.ResolveActiveLease(ctx, tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	info.Lease = lease
	info.Status = status

	if lease == nil {
		h.Success(c, info)
		return
	}

	payments, err := h.paymentService.ListLeasePayments(ctx, info.Lease.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	info.Payments = payments
	for i := range payments {
		info.TotalPaid = info.TotalPaid.Add(payments[i].Amount)
	}

	outstanding, err := h.paymentService.OutstandingBalance(ctx, info.Lease.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	info.Outstanding = outstanding

	h.Success(c, info)
}

// parseDate parses a YYYY-MM-DD date string
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
