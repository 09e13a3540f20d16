package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"landlord_portal_backend/internal/properties/service"
	"landlord_portal_backend/internal/properties/transport"
	"landlord_portal_backend/platform/httpkit"
	"landlord_portal_backend/platform/validator"
)

// Handler handles HTTP requests for properties.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid property id"
)

// New creates a new properties handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the landlord's properties.
// GET /api/v1/properties
func (h *Handler) List(c *gin.Context) {
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), identity.UserID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPropertyResponses(items))
}

// Create adds a property.
// POST /api/v1/properties
func (h *Handler) Create(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	p, parsed, err := h.svc.Create(c.Request.Context(), identity.UserID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.SaveResponse{
		Property:      transport.ToPropertyResponse(p),
		AddressParsed: parsed,
	})
}

// Get returns a property.
// GET /api/v1/properties/:id
func (h *Handler) Get(c *gin.Context) {
	ownerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), ownerID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPropertyResponse(p))
}

// Update replaces a property.
// PUT /api/v1/properties/:id
func (h *Handler) Update(c *gin.Context) {
	ownerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	p, parsed, err := h.svc.Update(c.Request.Context(), ownerID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SaveResponse{
		Property:      transport.ToPropertyResponse(p),
		AddressParsed: parsed,
	})
}

// Delete removes a property.
// DELETE /api/v1/properties/:id
func (h *Handler) Delete(c *gin.Context) {
	ownerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ownerID, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindRequest(c *gin.Context) (transport.PropertyRequest, bool) {
	var req transport.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return req, false
	}
	return req, true
}

func (h *Handler) identityAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, uuid.Nil, false
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return identity.UserID, id, true
}
