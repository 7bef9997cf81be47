package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	lettingapp "github.com/rently/backend/internal/application/letting"
	"github.com/rently/backend/internal/domain/letting"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *lettingapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *lettingapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// CreatePropertyRequest represents a request to register a property
type CreatePropertyRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Address     string  `json:"address" binding:"required,min=1,max=500"`
	Type        string  `json:"type" binding:"required,oneof=apartment house duplex shop office"`
	Description string  `json:"description"`
	LandlordID  *string `json:"landlord_id" binding:"omitempty,uuid"`
}

// RegisterRoutes registers property routes on the given group
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.GetByID)
		properties.GET("/:id/tenants", h.ListTenants)
		properties.DELETE("/:id", h.Delete)
	}
}

// Create registers a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := lettingapp.CreatePropertyInput{
		Name:        req.Name,
		Address:     req.Address,
		Type:        letting.PropertyType(req.Type),
		Description: req.Description,
	}
	if req.LandlordID != nil {
		landlordID, err := uuid.Parse(*req.LandlordID)
		if err != nil {
			h.BadRequest(c, "Invalid landlord ID format")
			return
		}
		input.LandlordID = &landlordID
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, property)
}

// List returns a page of properties
func (h *PropertyHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	properties, err := h.propertyService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, properties)
}

// GetByID returns a single property
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// ListTenants returns the tenants assigned to a property
func (h *PropertyHandler) ListTenants(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	tenants, err := h.propertyService.ListPropertyTenants(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenants)
}

// Delete removes a property
func (h *PropertyHandler) Delete(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
