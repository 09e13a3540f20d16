package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"landlord_portal_backend/internal/geo"
	"landlord_portal_backend/internal/maps"
	"landlord_portal_backend/internal/vendors/repository"
	"landlord_portal_backend/internal/vendors/transport"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/logger"
)

type memoryRepo struct {
	vendors   []repository.Vendor
	favorites map[uuid.UUID]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{favorites: make(map[uuid.UUID]bool)}
}

func (r *memoryRepo) Create(_ context.Context, p repository.CreateParams) (repository.Vendor, error) {
	v := repository.Vendor{
		ID: uuid.New(), OwnerID: p.OwnerID, Name: p.Name, Specialty: p.Specialty, Rating: p.Rating,
		Phone: p.Phone, Email: p.Email, Address: p.Address, Latitude: p.Latitude, Longitude: p.Longitude,
	}
	r.vendors = append(r.vendors, v)
	return v, nil
}

func (r *memoryRepo) List(_ context.Context, ownerID uuid.UUID, specialty string) ([]repository.Vendor, error) {
	var out []repository.Vendor
	for _, v := range r.vendors {
		if v.OwnerID != ownerID {
			continue
		}
		if specialty != "" && !strings.EqualFold(v.Specialty, specialty) {
			continue
		}
		v.Favorite = r.favorites[v.ID]
		out = append(out, v)
	}
	return out, nil
}

func (r *memoryRepo) AddFavorite(_ context.Context, ownerID, vendorID uuid.UUID) error {
	for _, v := range r.vendors {
		if v.ID == vendorID && v.OwnerID == ownerID {
			r.favorites[vendorID] = true
			return nil
		}
	}
	return apperr.NotFound("vendor not found")
}

func (r *memoryRepo) RemoveFavorite(_ context.Context, _, vendorID uuid.UUID) error {
	delete(r.favorites, vendorID)
	return nil
}

type stubGeocoder struct {
	coords *maps.Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) GetCoordinates(context.Context, string, maps.SearchOptions) (*maps.Coordinates, error) {
	g.calls++
	return g.coords, g.err
}

func ptr(v float64) *float64 { return &v }

func TestCreateNormalizesAndGeocodes(t *testing.T) {
	geocoder := &stubGeocoder{coords: &maps.Coordinates{Lat: 40.7128, Lng: -74.006}}
	svc := New(newMemoryRepo(), geocoder, logger.Discard())

	v, err := svc.Create(context.Background(), uuid.New(), transport.CreateVendorRequest{
		Name:      " Ace Plumbing ",
		Specialty: "Plumbing",
		Rating:    4.5,
		Phone:     "(415) 555-2671",
		Email:     "Office@AcePlumbing.com",
		Address:   "10  Broad St,  New York, NY 10004",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Name != "Ace Plumbing" || v.Email != "office@aceplumbing.com" {
		t.Fatalf("expected trimmed name and lowercased email, got %q %q", v.Name, v.Email)
	}
	if v.Phone != "+14155552671" {
		t.Fatalf("expected E.164 phone, got %q", v.Phone)
	}
	if v.Address != "10 Broad St, New York, NY 10004" {
		t.Fatalf("expected normalized address, got %q", v.Address)
	}
	if v.Latitude == nil || *v.Latitude != 40.7128 {
		t.Fatalf("expected geocoded latitude, got %v", v.Latitude)
	}
}

func TestCreateKeepsGivenCoordinates(t *testing.T) {
	geocoder := &stubGeocoder{}
	svc := New(newMemoryRepo(), geocoder, logger.Discard())

	_, err := svc.Create(context.Background(), uuid.New(), transport.CreateVendorRequest{
		Name: "Volt", Specialty: "Electrical", Address: "1 Main St, Austin, TX",
		Latitude: ptr(30.26), Longitude: ptr(-97.74),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if geocoder.calls != 0 {
		t.Fatalf("expected no geocode call, got %d", geocoder.calls)
	}
}

func TestCreateStoresUnplacedVendorOnGeocodeFailure(t *testing.T) {
	svc := New(newMemoryRepo(), &stubGeocoder{err: errors.New("timeout")}, logger.Discard())

	v, err := svc.Create(context.Background(), uuid.New(), transport.CreateVendorRequest{
		Name: "Volt", Specialty: "Electrical", Address: "1 Main St, Austin, TX",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Latitude != nil || v.Longitude != nil {
		t.Fatal("expected vendor without coordinates")
	}
}

func TestNearbyRanksBySpecialtyThenDistance(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, nil, logger.Discard())
	owner := uuid.New()
	ctx := context.Background()

	mustCreate := func(name, specialty string, lat, lon *float64) repository.Vendor {
		t.Helper()
		v, err := svc.Create(ctx, owner, transport.CreateVendorRequest{Name: name, Specialty: specialty, Latitude: lat, Longitude: lon})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		return v
	}

	far := mustCreate("Far Plumbing", "Plumbing", ptr(40.80), ptr(-74.00))
	near := mustCreate("Near Plumbing", "Plumbing", ptr(40.72), ptr(-74.00))
	mustCreate("Sparks", "Electrical", ptr(40.75), ptr(-74.00))
	mustCreate("Nowhere Roofing", "Roofing", nil, nil)
	mustCreate("Albany Roofing", "Roofing", ptr(42.65), ptr(-73.75))
	_, _ = svc.Create(ctx, uuid.New(), transport.CreateVendorRequest{Name: "Other Owner", Specialty: "Plumbing", Latitude: ptr(40.71), Longitude: ptr(-74.0)})

	if err := svc.AddFavorite(ctx, owner, near.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	got, err := svc.Nearby(ctx, owner, geo.Point{Lat: 40.71, Lon: -74.00}, 25, "")
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}

	names := make([]string, 0, len(got))
	for _, v := range got {
		names = append(names, v.Name)
	}
	want := []string{"Sparks", "Near Plumbing", "Far Plumbing"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if !got[1].Favorite || got[2].Favorite {
		t.Fatalf("unexpected favorite flags: %+v", got)
	}
	if got[2].ID != far.ID.String() || got[2].Distance <= got[1].Distance {
		t.Fatalf("expected far vendor last with larger distance: %+v", got)
	}

	plumbing, err := svc.Nearby(ctx, owner, geo.Point{Lat: 40.71, Lon: -74.00}, 25, "plumbing")
	if err != nil {
		t.Fatalf("nearby plumbing: %v", err)
	}
	if len(plumbing) != 2 {
		t.Fatalf("expected 2 plumbing vendors, got %d", len(plumbing))
	}
}

func TestAddFavoriteOtherOwner(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, nil, logger.Discard())
	v, _ := svc.Create(context.Background(), uuid.New(), transport.CreateVendorRequest{Name: "A", Specialty: "HVAC"})

	err := svc.AddFavorite(context.Background(), uuid.New(), v.ID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
