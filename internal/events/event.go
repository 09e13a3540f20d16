// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"landlord_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Property Domain Events
// =============================================================================

// PropertyAddressChanged is published when a property is created or its
// address is edited without coordinates. The scheduler geocodes it.
type PropertyAddressChanged struct {
	BaseEvent
	PropertyID  uuid.UUID `json:"propertyId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	FullAddress string    `json:"fullAddress"`
}

func (e PropertyAddressChanged) EventName() string { return "properties.address.changed" }
