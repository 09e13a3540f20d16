package transport

import (
	"landlord_portal_backend/internal/geo"
	"landlord_portal_backend/internal/vendors/repository"
)

// DefaultRadiusMiles is the nearby search radius when none is given.
const DefaultRadiusMiles = 25

// CreateVendorRequest adds a vendor. Coordinates are optional but come as a
// pair; when absent the address is geocoded.
type CreateVendorRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Specialty string   `json:"specialty" validate:"required,max=100"`
	Rating    float64  `json:"rating" validate:"gte=0,lte=5"`
	Phone     string   `json:"phone" validate:"omitempty,phone_us"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Address   string   `json:"address" validate:"max=500"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
}

// ListVendorsRequest filters the vendor list.
type ListVendorsRequest struct {
	Specialty string `form:"specialty" validate:"max=100"`
}

// NearbyRequest searches vendors around a point.
type NearbyRequest struct {
	Lat       *float64 `form:"lat" validate:"required,latitude"`
	Lon       *float64 `form:"lon" validate:"required,longitude"`
	Radius    float64  `form:"radius" validate:"gte=0,lte=500"`
	Specialty string   `form:"specialty" validate:"max=100"`
}

// RadiusMiles returns the requested radius or the default.
func (r NearbyRequest) RadiusMiles() float64 {
	if r.Radius <= 0 {
		return DefaultRadiusMiles
	}
	return r.Radius
}

// ToSearchResult maps a stored vendor to a search result without distance.
func ToSearchResult(v repository.Vendor) geo.Vendor {
	return geo.Vendor{
		ID:        v.ID.String(),
		Name:      v.Name,
		Specialty: v.Specialty,
		Rating:    v.Rating,
		Phone:     v.Phone,
		Email:     v.Email,
		Address:   v.Address,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		Favorite:  v.Favorite,
	}
}

// ToSearchResults maps a list of vendors.
func ToSearchResults(items []repository.Vendor) []geo.Vendor {
	out := make([]geo.Vendor, 0, len(items))
	for _, v := range items {
		out = append(out, ToSearchResult(v))
	}
	return out
}
