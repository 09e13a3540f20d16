// Package properties provides the property bounded context module.
package properties

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"landlord_portal_backend/internal/events"
	apphttp "landlord_portal_backend/internal/http"
	"landlord_portal_backend/internal/properties/handler"
	"landlord_portal_backend/internal/properties/repository"
	"landlord_portal_backend/internal/properties/service"
	"landlord_portal_backend/internal/scheduler"
	"landlord_portal_backend/platform/logger"
	"landlord_portal_backend/platform/validator"
)

// Module is the properties bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	queue   scheduler.GeocodeScheduler
	log     *logger.Logger
}

// NewModule creates and initializes the properties module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, geocoder service.Geocoder, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), bus, geocoder, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		log:     log,
	}
}

// SetGeocodeScheduler routes address changes to the background queue. Without
// one they are geocoded in the event handler goroutine.
func (m *Module) SetGeocodeScheduler(queue scheduler.GeocodeScheduler) {
	m.queue = queue
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.PropertyAddressChanged{}.EventName(), events.HandlerFunc(m.handleAddressChanged))
}

func (m *Module) handleAddressChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.PropertyAddressChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if m.queue != nil {
		if err := m.queue.EnqueuePropertyGeocode(ctx, e.PropertyID); err != nil {
			return fmt.Errorf("enqueue geocode for property %s: %w", e.PropertyID, err)
		}
		return nil
	}
	return m.service.GeocodeProperty(ctx, e.PropertyID)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "properties"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts property routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/properties")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
