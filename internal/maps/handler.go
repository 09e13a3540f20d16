package maps

import (
	"net/http"
	"strings"

	"landlord_portal_backend/internal/address"
	"landlord_portal_backend/platform/httpkit"
	"landlord_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const defaultLookupField = "address"

// Handler exposes the maps endpoints.
type Handler struct {
	svc  *Service
	live *LiveSearcher
}

func NewHandler(svc *Service, live *LiveSearcher) *Handler {
	return &Handler{svc: svc, live: live}
}

// LookupAddress handles GET /api/v1/maps/address-lookup?q=...&field=...
// Each user/field pair has at most one live lookup; an older request still
// waiting on the provider answers with superseded=true.
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lookup parameters", validator.FieldErrors(err))
		return
	}

	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	field := strings.TrimSpace(req.Field)
	if field == "" {
		field = defaultLookupField
	}

	result, err := h.live.Search(c.Request.Context(), identity.UserID.String()+":"+field, req.Query, SearchOptions{
		Limit:       req.Limit,
		MinResults:  req.MinResults,
		CountryCode: req.Country,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ReverseGeocode handles GET /api/v1/maps/reverse?lat=...&lon=...
func (h *Handler) ReverseGeocode(c *gin.Context) {
	var req ReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and lon are required", validator.FieldErrors(err))
		return
	}

	result, err := h.svc.ReverseGeocode(c.Request.Context(), *req.Lat, *req.Lon, SearchOptions{})
	if httpkit.HandleError(c, err) {
		return
	}
	if result == nil {
		httpkit.Error(c, http.StatusNotFound, "no address found for this location", nil)
		return
	}

	httpkit.OK(c, result)
}

// ParseAddress handles POST /api/v1/maps/parse. Parsing never fails; the
// parsed flag tells the form whether to prompt for manual correction.
func (h *Handler) ParseAddress(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "address is required", validator.FieldErrors(err))
		return
	}

	form, parsed := address.ParseComponents(req.Address)
	httpkit.OK(c, ParseResponse{Form: form, Parsed: parsed})
}
