package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	lettingapp "github.com/rently/backend/internal/application/letting"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// LandlordHandler handles landlord-related API endpoints
type LandlordHandler struct {
	BaseHandler
	landlordService *lettingapp.LandlordService
}

// NewLandlordHandler creates a new LandlordHandler
func NewLandlordHandler(landlordService *lettingapp.LandlordService) *LandlordHandler {
	return &LandlordHandler{landlordService: landlordService}
}

// CreateLandlordRequest represents a request to register a landlord
type CreateLandlordRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	Address   string `json:"address" binding:"max=500"`
}

// RegisterRoutes registers landlord routes on the given group
func (h *LandlordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	landlords := rg.Group("/landlords")
	{
		landlords.POST("", h.Create)
		landlords.GET("", h.List)
		landlords.GET("/:id", h.GetByID)
		landlords.GET("/:id/properties", h.ListProperties)
		landlords.DELETE("/:id", h.Delete)
	}
}

// Create registers a new landlord
func (h *LandlordHandler) Create(c *gin.Context) {
	var req CreateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	landlord, err := h.landlordService.CreateLandlord(c.Request.Context(), lettingapp.CreateLandlordInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, landlord)
}

// List returns a page of landlords
func (h *LandlordHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	landlords, err := h.landlordService.ListLandlords(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, landlords)
}

// GetByID returns a single landlord
func (h *LandlordHandler) GetByID(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	landlord, err := h.landlordService.GetLandlord(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, landlord)
}

// ListProperties returns the properties owned by a landlord
func (h *LandlordHandler) ListProperties(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	properties, err := h.landlordService.ListLandlordProperties(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, properties)
}

// Delete removes a landlord
func (h *LandlordHandler) Delete(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	if err := h.landlordService.DeleteLandlord(c.Request.Context(), landlordID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
