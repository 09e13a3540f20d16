// Package service implements vendor management and proximity search.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"landlord_portal_backend/internal/address"
	"landlord_portal_backend/internal/geo"
	"landlord_portal_backend/internal/maps"
	"landlord_portal_backend/internal/vendors/repository"
	"landlord_portal_backend/internal/vendors/transport"
	"landlord_portal_backend/platform/logger"
	"landlord_portal_backend/platform/phone"
)

// Geocoder resolves a full address to coordinates; nil means no match.
type Geocoder interface {
	GetCoordinates(ctx context.Context, fullAddress string, opts maps.SearchOptions) (*maps.Coordinates, error)
}

// Service handles vendor business logic.
type Service struct {
	repo     repository.Repository
	geocoder Geocoder
	log      *logger.Logger
}

// New creates a new vendors service. geocoder may be nil.
func New(repo repository.Repository, geocoder Geocoder, log *logger.Logger) *Service {
	return &Service{repo: repo, geocoder: geocoder, log: log}
}

// Create stores a vendor. A vendor sent without coordinates is geocoded
// from its address; a failed lookup stores it unplaced, and it will not
// show up in nearby searches.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req transport.CreateVendorRequest) (repository.Vendor, error) {
	form, _ := address.ParseComponents(req.Address)
	lat, lon := req.Latitude, req.Longitude

	if (lat == nil || lon == nil) && form.FullAddress != "" && s.geocoder != nil {
		coords, err := s.geocoder.GetCoordinates(ctx, form.FullAddress, maps.SearchOptions{})
		switch {
		case err != nil:
			s.log.Warn("vendor geocode failed", "address", form.FullAddress, "error", err)
		case coords != nil:
			lat, lon = &coords.Lat, &coords.Lng
		}
	}

	return s.repo.Create(ctx, repository.CreateParams{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(req.Name),
		Specialty: strings.TrimSpace(req.Specialty),
		Rating:    req.Rating,
		Phone:     phone.NormalizeE164(req.Phone),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Address:   form.FullAddress,
		Latitude:  lat,
		Longitude: lon,
	})
}

// List returns the owner's vendors, optionally limited to one specialty.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, specialty string) ([]repository.Vendor, error) {
	return s.repo.List(ctx, ownerID, strings.TrimSpace(specialty))
}

// Nearby ranks the owner's vendors by distance from origin. Vendors
// without coordinates or outside radiusMiles are left out.
func (s *Service) Nearby(ctx context.Context, ownerID uuid.UUID, origin geo.Point, radiusMiles float64, specialty string) ([]geo.Vendor, error) {
	items, err := s.List(ctx, ownerID, specialty)
	if err != nil {
		return nil, err
	}
	return geo.RankVendors(transport.ToSearchResults(items), origin, radiusMiles), nil
}

// AddFavorite marks a vendor as favorite.
func (s *Service) AddFavorite(ctx context.Context, ownerID, vendorID uuid.UUID) error {
	return s.repo.AddFavorite(ctx, ownerID, vendorID)
}

// RemoveFavorite unmarks a vendor.
func (s *Service) RemoveFavorite(ctx context.Context, ownerID, vendorID uuid.UUID) error {
	return s.repo.RemoveFavorite(ctx, ownerID, vendorID)
}
