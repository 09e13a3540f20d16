package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"landlord_portal_backend/internal/geo"
	"landlord_portal_backend/internal/vendors/service"
	"landlord_portal_backend/internal/vendors/transport"
	"landlord_portal_backend/platform/httpkit"
	"landlord_portal_backend/platform/validator"
)

// Handler handles HTTP requests for vendors.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new vendors handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the landlord's vendors.
// GET /api/v1/vendors?specialty=
func (h *Handler) List(c *gin.Context) {
	var req transport.ListVendorsRequest
	if !h.bindQuery(c, &req) {
		return
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), identity.UserID, req.Specialty)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSearchResults(items))
}

// Nearby ranks vendors by distance.
// GET /api/v1/vendors/nearby?lat&lon&radius&specialty
func (h *Handler) Nearby(c *gin.Context) {
	var req transport.NearbyRequest
	if !h.bindQuery(c, &req) {
		return
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	origin := geo.Point{Lat: *req.Lat, Lon: *req.Lon}
	items, err := h.svc.Nearby(c.Request.Context(), identity.UserID, origin, req.RadiusMiles(), req.Specialty)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Create adds a vendor.
// POST /api/v1/vendors
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	v, err := h.svc.Create(c.Request.Context(), identity.UserID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToSearchResult(v))
}

// AddFavorite marks a vendor as favorite.
// POST /api/v1/vendors/:id/favorite
func (h *Handler) AddFavorite(c *gin.Context) {
	ownerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	if err := h.svc.AddFavorite(c.Request.Context(), ownerID, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFavorite unmarks a vendor.
// DELETE /api/v1/vendors/:id/favorite
func (h *Handler) RemoveFavorite(c *gin.Context) {
	ownerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveFavorite(c.Request.Context(), ownerID, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func (h *Handler) identityAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid vendor id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return identity.UserID, id, true
}
