package transport

import (
	"time"

	"github.com/google/uuid"

	"landlord_portal_backend/internal/properties/repository"
)

// PropertyRequest creates or replaces a property. Address is the free-text
// address and is stored as given; structured fields, when sent, take
// precedence over the ones parsed from it. Either Address or StreetAddress
// with City is required.
type PropertyRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Address       string   `json:"address" validate:"required_without=StreetAddress,max=500"`
	StreetAddress string   `json:"streetAddress" validate:"required_without=Address,max=300"`
	City          string   `json:"city" validate:"required_with=StreetAddress,max=200"`
	State         string   `json:"state" validate:"max=50"`
	ZipCode       string   `json:"zipCode" validate:"omitempty,zip5"`
	Latitude      *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	PropertyType  string   `json:"propertyType" validate:"omitempty,oneof=single_family multi_family apartment condo townhouse other"`
	YearBuilt     *int     `json:"yearBuilt" validate:"omitempty,min=1700,max=2100"`
}

// PropertyResponse is a property as returned to the dashboard.
type PropertyResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	FullAddress   string    `json:"fullAddress"`
	StreetAddress string    `json:"streetAddress"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zipCode"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	PropertyType  string    `json:"propertyType"`
	YearBuilt     *int      `json:"yearBuilt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SaveResponse wraps a saved property with the parser outcome so the form
// can ask the landlord to check an address it could not split.
type SaveResponse struct {
	Property      PropertyResponse `json:"property"`
	AddressParsed bool             `json:"addressParsed"`
}

// ToPropertyResponse maps a property.
func ToPropertyResponse(p repository.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		Name:          p.Name,
		FullAddress:   p.FullAddress,
		StreetAddress: p.StreetAddress,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		PropertyType:  p.PropertyType,
		YearBuilt:     p.YearBuilt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPropertyResponses maps a list of properties.
func ToPropertyResponses(items []repository.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToPropertyResponse(p))
	}
	return out
}
