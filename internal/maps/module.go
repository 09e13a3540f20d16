package maps

import (
	apphttp "landlord_portal_backend/internal/http"
)

// Module wires the maps HTTP routes.
type Module struct {
	handler *Handler
}

// NewModule builds the maps module around an existing geocoding service so
// background workers can share the same cache and rate limiter.
func NewModule(svc *Service) *Module {
	h := NewHandler(svc, NewLiveSearcher(svc, DefaultDebounce))
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/maps")
	group.GET("/address-lookup", m.handler.LookupAddress)
	group.GET("/reverse", m.handler.ReverseGeocode)
	group.POST("/parse", m.handler.ParseAddress)
}

var _ apphttp.Module = (*Module)(nil)
