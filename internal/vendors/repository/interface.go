package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Vendor is a maintenance vendor saved by a landlord. Favorite is derived
// from the caller's favorite list.
type Vendor struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Specialty string
	Rating    float64
	Phone     string
	Email     string
	Address   string
	Latitude  *float64
	Longitude *float64
	Favorite  bool
	CreatedAt time.Time
}

// CreateParams contains data for creating a vendor.
type CreateParams struct {
	OwnerID   uuid.UUID
	Name      string
	Specialty string
	Rating    float64
	Phone     string
	Email     string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// Repository defines persistence for vendors and favorites.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Vendor, error)
	// List returns the owner's vendors; an empty specialty matches all.
	List(ctx context.Context, ownerID uuid.UUID, specialty string) ([]Vendor, error)
	AddFavorite(ctx context.Context, ownerID, vendorID uuid.UUID) error
	RemoveFavorite(ctx context.Context, ownerID, vendorID uuid.UUID) error
}
