// Package vendors provides the maintenance vendor module.
package vendors

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "landlord_portal_backend/internal/http"
	"landlord_portal_backend/internal/vendors/handler"
	"landlord_portal_backend/internal/vendors/repository"
	"landlord_portal_backend/internal/vendors/service"
	"landlord_portal_backend/platform/logger"
	"landlord_portal_backend/platform/validator"
)

// Module is the vendors module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the vendors module.
func NewModule(pool *pgxpool.Pool, geocoder service.Geocoder, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), geocoder, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vendors"
}

// RegisterRoutes mounts vendor routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/vendors")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/nearby", m.handler.Nearby)
	group.POST("/:id/favorite", m.handler.AddFavorite)
	group.DELETE("/:id/favorite", m.handler.RemoveFavorite)
}

var _ apphttp.Module = (*Module)(nil)
