package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/internal/leases/export"
	"landlord_portal_backend/internal/leases/service"
	"landlord_portal_backend/internal/leases/transport"
	"landlord_portal_backend/platform/httpkit"
	"landlord_portal_backend/platform/validator"
)

// Handler handles HTTP requests for leases.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lease id"
)

// New creates a new lease handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListClauses returns the predefined clause catalog.
// GET /api/v1/leases/clauses
func (h *Handler) ListClauses(c *gin.Context) {
	httpkit.OK(c, h.svc.Clauses())
}

// GetDefaults returns a new lease pre-filled from the landlord profile.
// GET /api/v1/leases/defaults
func (h *Handler) GetDefaults(c *gin.Context) {
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	lease, err := h.svc.Defaults(c.Request.Context(), identity.UserID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lease)
}

// GetProfile returns the landlord profile.
// GET /api/v1/leases/profile
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), identity.UserID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

// UpdateProfile stores the landlord profile.
// PUT /api/v1/leases/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req transport.ProfileRequest
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

	profile, err := h.svc.SaveProfile(c.Request.Context(), domain.LandlordProfile{
		UserID:                identity.UserID,
		FullName:              req.FullName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Address:               req.Address,
		DefaultState:          req.DefaultState,
		DefaultLateFee:        req.DefaultLateFee,
		DefaultGraceDays:      req.DefaultGraceDays,
		DefaultPaymentMethods: req.DefaultPaymentMethods,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

// Preview renders a lease without storing it.
// POST /api/v1/leases/preview
func (h *Handler) Preview(c *gin.Context) {
	var lease domain.Lease
	if err := c.ShouldBindJSON(&lease); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	html, err := h.svc.Preview(c.Request.Context(), lease)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PreviewResponse{HTML: html})
}

// Create stores a new lease snapshot.
// POST /api/v1/leases
func (h *Handler) Create(c *gin.Context) {
	var lease domain.Lease
	if err := c.ShouldBindJSON(&lease); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	snapshot, err := h.svc.Create(c.Request.Context(), identity.UserID, lease)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToLeaseResponse(snapshot))
}

// List returns the landlord's lease snapshots.
// GET /api/v1/leases?propertyId=
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeasesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
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

	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		id := uuid.MustParse(req.PropertyID)
		propertyID = &id
	}

	items, err := h.svc.List(c.Request.Context(), identity.UserID, propertyID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLeaseSummaries(items))
}

// Get returns a stored lease.
// GET /api/v1/leases/:id
func (h *Handler) Get(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	snapshot, err := h.svc.Get(c.Request.Context(), identity, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLeaseResponse(snapshot))
}

// GetHTML returns the stored lease markup.
// GET /api/v1/leases/:id/html
func (h *Handler) GetHTML(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	snapshot, err := h.svc.Get(c.Request.Context(), identity, id)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(snapshot.HTML))
}

// Analyze returns the legal review of a lease.
// POST /api/v1/leases/:id/legal-analysis
func (h *Handler) Analyze(c *gin.Context) {
	var req transport.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	analysis, err := h.svc.Analyze(c.Request.Context(), identity, id, req.Refresh)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAnalysisResponse(analysis))
}

// Export downloads the lease as a Word document, or as PDF for the print view.
// GET /api/v1/leases/:id/export?view=contract|legal|print
func (h *Handler) Export(c *gin.Context) {
	var req transport.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	view, err := export.ParseView(req.View)
	if httpkit.HandleError(c, err) {
		return
	}
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	artifact, err := h.svc.Export(c.Request.Context(), identity, id, view)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Attachment(c, artifact.FileName, artifact.ContentType, artifact.Data)
}

// ListExports lists archived exports.
// GET /api/v1/leases/:id/exports
func (h *Handler) ListExports(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	items, err := h.svc.ListExports(c.Request.Context(), identity, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToExportRecords(items))
}

// ExportDownloadURL returns a presigned URL for an archived export.
// GET /api/v1/leases/:id/exports/:exportId/download
func (h *Handler) ExportDownloadURL(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	exportID, err := uuid.Parse(c.Param("exportId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid export id", nil)
		return
	}

	url, err := h.svc.ExportDownloadURL(c.Request.Context(), identity, id, exportID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, url)
}

// Send emails the lease to the tenant.
// POST /api/v1/leases/:id/send
func (h *Handler) Send(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	if err := h.svc.Send(c.Request.Context(), identity, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "sent"})
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
