package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	leasingapp "github.com/rently/backend/internal/application/leasing"
	"github.com/rently/backend/internal/domain/leasing"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment ledger API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *leasingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *leasingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest represents a request to record a settled payment
type RecordPaymentRequest struct {
	LeaseID   string  `json:"lease_id" binding:"required,uuid"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Type      string  `json:"type" binding:"omitempty,paymenttype"`
	Reference string  `json:"reference" binding:"max=200"`
}

// OutstandingResponse reports the remaining balance on a lease
type OutstandingResponse struct {
	LeaseID     uuid.UUID       `json:"lease_id"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// RegisterRoutes registers payment routes on the given group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Record)
		payments.GET("", h.List)
		payments.GET("/:id/receipt", h.Receipt)
	}

	rg.GET("/leases/:id/payments", h.ListForLease)
	rg.GET("/leases/:id/outstanding", h.Outstanding)
}

// Record appends a payment to a lease's ledger
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	leaseID, err := uuid.Parse(req.LeaseID)
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	paymentType := leasing.PaymentTypeCash
	if req.Type != "" {
		paymentType = leasing.PaymentType(req.Type)
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), leasingapp.RecordPaymentInput{
		LeaseID:   leaseID,
		Amount:    toDecimal(req.Amount),
		Type:      paymentType,
		Reference: req.Reference,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// List returns a page of payments across all leases
func (h *PaymentHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Receipt returns the rendered receipt data for a payment
func (h *PaymentHandler) Receipt(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	receipt, err := h.paymentService.GenerateReceipt(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// ListForLease returns all payments recorded against a lease
func (h *PaymentHandler) ListForLease(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	payments, err := h.paymentService.ListLeasePayments(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Outstanding returns the remaining balance on a lease
func (h *PaymentHandler) Outstanding(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	outstanding, err := h.paymentService.OutstandingBalance(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, OutstandingResponse{LeaseID: leaseID, Outstanding: outstanding})
}
