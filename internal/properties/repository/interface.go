package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Property is a rental unit owned by a landlord.
type Property struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	FullAddress   string
	StreetAddress string
	City          string
	State         string
	ZipCode       string
	Latitude      *float64
	Longitude     *float64
	PropertyType  string
	YearBuilt     *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasCoordinates reports whether the property has been geocoded.
func (p Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// CreateParams contains data for creating a property.
type CreateParams struct {
	OwnerID       uuid.UUID
	Name          string
	FullAddress   string
	StreetAddress string
	City          string
	State         string
	ZipCode       string
	Latitude      *float64
	Longitude     *float64
	PropertyType  string
	YearBuilt     *int
}

// UpdateParams contains data for updating a property. Coordinates are
// replaced as given, so an address change without coordinates clears them.
type UpdateParams struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	FullAddress   string
	StreetAddress string
	City          string
	State         string
	ZipCode       string
	Latitude      *float64
	Longitude     *float64
	PropertyType  string
	YearBuilt     *int
}

// Repository defines persistence for properties.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Property, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Property, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Property, error)
	Update(ctx context.Context, params UpdateParams) (Property, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// GetForGeocoding loads a property regardless of owner for background jobs.
	GetForGeocoding(ctx context.Context, id uuid.UUID) (Property, error)
	SetCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error
	// MarkGeocodeMiss records that the provider could not place the address.
	MarkGeocodeMiss(ctx context.Context, id uuid.UUID) error
	// ListMissingCoordinates returns never-tried properties first, then the
	// least recently missed.
	ListMissingCoordinates(ctx context.Context, limit int) ([]Property, error)
}
