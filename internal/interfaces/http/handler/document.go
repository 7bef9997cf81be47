package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rently/backend/internal/application/document"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// DocumentHandler serves generated PDF documents
type DocumentHandler struct {
	BaseHandler
	documentService *document.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *document.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// PaymentNoticeRequest carries the due date for a payment notice
type PaymentNoticeRequest struct {
	DueDate string `json:"due_date" binding:"required"`
}

// QuitNoticeRequest carries the reason for a quit notice
type QuitNoticeRequest struct {
	Reason string `json:"reason" binding:"required,min=1"`
}

// RegisterRoutes registers document routes on the given group
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.GET("/leases/:id/agreement", h.TenancyAgreement)
		documents.GET("/payments/:id/receipt", h.PaymentReceipt)
		documents.POST("/leases/:id/payment-notice", h.PaymentNotice)
		documents.POST("/tenants/:id/quit-notice", h.QuitNotice)
	}
}

// TenancyAgreement renders the tenancy agreement for a lease
func (h *DocumentHandler) TenancyAgreement(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	pdf, err := h.documentService.TenancyAgreement(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.servePDF(c, fmt.Sprintf("tenancy-agreement-%s.pdf", leaseID), pdf)
}

// PaymentReceipt renders the receipt for a payment
func (h *DocumentHandler) PaymentReceipt(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	pdf, err := h.documentService.PaymentReceipt(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.servePDF(c, fmt.Sprintf("payment-receipt-%s.pdf", paymentID), pdf)
}

// PaymentNotice renders an outstanding-balance notice for a lease
func (h *DocumentHandler) PaymentNotice(c *gin.Context) {
	leaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	var req PaymentNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	pdf, err := h.documentService.PaymentNotice(c.Request.Context(), leaseID, dueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.servePDF(c, fmt.Sprintf("payment-notice-%s.pdf", leaseID), pdf)
}

// QuitNotice renders a notice to quit for a tenant
func (h *DocumentHandler) QuitNotice(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req QuitNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	pdf, err := h.documentService.QuitNotice(c.Request.Context(), tenantID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.servePDF(c, fmt.Sprintf("quit-notice-%s.pdf", tenantID), pdf)
}

// servePDF writes PDF bytes as an attachment
func (h *DocumentHandler) servePDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
