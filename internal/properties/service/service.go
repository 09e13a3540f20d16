// Package service implements property management and background geocoding.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"landlord_portal_backend/internal/address"
	"landlord_portal_backend/internal/events"
	"landlord_portal_backend/internal/maps"
	"landlord_portal_backend/internal/properties/repository"
	"landlord_portal_backend/internal/properties/transport"
	"landlord_portal_backend/platform/logger"
)

const defaultPropertyType = "single_family"

// Geocoder resolves a full address to coordinates; nil means no match.
type Geocoder interface {
	GetCoordinates(ctx context.Context, fullAddress string, opts maps.SearchOptions) (*maps.Coordinates, error)
}

// Service handles property business logic.
type Service struct {
	repo     repository.Repository
	bus      events.Bus
	geocoder Geocoder
	log      *logger.Logger
}

// New creates a new properties service.
func New(repo repository.Repository, bus events.Bus, geocoder Geocoder, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, geocoder: geocoder, log: log}
}

// Create stores a property. Without coordinates a PropertyAddressChanged
// event is published so the address is geocoded in the background.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req transport.PropertyRequest) (repository.Property, bool, error) {
	form, parsed := resolveAddress(req)

	p, err := s.repo.Create(ctx, repository.CreateParams{
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(req.Name),
		FullAddress:   form.FullAddress,
		StreetAddress: form.StreetAddress,
		City:          form.City,
		State:         form.State,
		ZipCode:       form.ZipCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PropertyType:  propertyType(req.PropertyType),
		YearBuilt:     req.YearBuilt,
	})
	if err != nil {
		return repository.Property{}, false, err
	}

	s.publishAddressChanged(ctx, p)
	return p, parsed, nil
}

// Update replaces a property. Coordinates sent by the client are kept; an
// address change without them clears the stored position and re-geocodes.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req transport.PropertyRequest) (repository.Property, bool, error) {
	current, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return repository.Property{}, false, err
	}

	form, parsed := resolveAddress(req)
	lat, lon := req.Latitude, req.Longitude
	if lat == nil && lon == nil && strings.EqualFold(form.FullAddress, current.FullAddress) {
		lat, lon = current.Latitude, current.Longitude
	}

	p, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:            id,
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(req.Name),
		FullAddress:   form.FullAddress,
		StreetAddress: form.StreetAddress,
		City:          form.City,
		State:         form.State,
		ZipCode:       form.ZipCode,
		Latitude:      lat,
		Longitude:     lon,
		PropertyType:  propertyType(req.PropertyType),
		YearBuilt:     req.YearBuilt,
	})
	if err != nil {
		return repository.Property{}, false, err
	}

	s.publishAddressChanged(ctx, p)
	return p, parsed, nil
}

// Get returns one property.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (repository.Property, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List returns the owner's properties.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]repository.Property, error) {
	return s.repo.List(ctx, ownerID)
}

// Delete soft-deletes a property.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// GeocodeProperty looks up and stores the coordinates of a property. A
// property that already has coordinates or that the provider cannot place
// is left alone.
func (s *Service) GeocodeProperty(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetForGeocoding(ctx, id)
	if err != nil {
		return err
	}
	if p.HasCoordinates() {
		return nil
	}

	coords, err := s.geocoder.GetCoordinates(ctx, p.FullAddress, maps.SearchOptions{})
	if err != nil {
		return fmt.Errorf("geocode property %s: %w", id, err)
	}
	if coords == nil && p.City != "" {
		// Street-level miss; fall back to the locality.
		coords, err = s.geocoder.GetCoordinates(ctx, address.Compose("", p.City, p.State, p.ZipCode), maps.SearchOptions{})
		if err != nil {
			return fmt.Errorf("geocode property %s locality: %w", id, err)
		}
	}
	if coords == nil {
		s.log.Warn("property address not found by geocoder", "property_id", id, "address", p.FullAddress)
		return s.repo.MarkGeocodeMiss(ctx, id)
	}

	if err := s.repo.SetCoordinates(ctx, id, coords.Lat, coords.Lng); err != nil {
		return err
	}

	s.log.Info("property geocoded", "property_id", id)
	return nil
}

// BackfillCoordinates geocodes up to limit properties lacking coordinates.
// Individual failures are logged and counted; the run continues.
func (s *Service) BackfillCoordinates(ctx context.Context, limit int) (processed, failed int, err error) {
	items, err := s.repo.ListMissingCoordinates(ctx, limit)
	if err != nil {
		return 0, 0, err
	}

	for _, p := range items {
		if ctx.Err() != nil {
			return processed, failed, ctx.Err()
		}
		processed++
		if err := s.GeocodeProperty(ctx, p.ID); err != nil {
			failed++
			s.log.Error("property backfill failed", "property_id", p.ID, "error", err)
		}
	}
	return processed, failed, nil
}

func (s *Service) publishAddressChanged(ctx context.Context, p repository.Property) {
	if s.bus == nil || p.HasCoordinates() {
		return
	}
	s.bus.Publish(ctx, events.PropertyAddressChanged{
		BaseEvent:   events.NewBaseEvent(),
		PropertyID:  p.ID,
		OwnerID:     p.OwnerID,
		FullAddress: p.FullAddress,
	})
}

// resolveAddress keeps the landlord's free text as the full address and
// derives structured fields from it; structured fields sent by the form win.
// A form that sends only structured fields gets its full address composed.
func resolveAddress(req transport.PropertyRequest) (address.FormData, bool) {
	parsedForm, parsed := address.ParseComponents(req.Address)

	form := address.FormData{
		StreetAddress: firstNonEmpty(req.StreetAddress, parsedForm.StreetAddress),
		City:          firstNonEmpty(req.City, parsedForm.City),
		State:         firstNonEmpty(req.State, parsedForm.State),
		ZipCode:       firstNonEmpty(req.ZipCode, parsedForm.ZipCode),
		FullAddress:   parsedForm.FullAddress,
	}
	if code, ok := address.StateCode(form.State); ok {
		form.State = code
	}

	structured := req.StreetAddress != "" && req.City != ""
	if form.FullAddress == "" {
		form.FullAddress = address.Compose(form.StreetAddress, form.City, form.State, form.ZipCode)
	}
	return form, parsed || structured
}

func propertyType(t string) string {
	if t == "" {
		return defaultPropertyType
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// PendingGeocode returns the ids of properties still lacking coordinates.
func (s *Service) PendingGeocode(ctx context.Context, limit int) ([]uuid.UUID, error) {
	items, err := s.repo.ListMissingCoordinates(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
