// Package geo holds great-circle distance helpers used for vendor proximity.
package geo

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// EarthRadiusMiles is the mean Earth radius used by CalculateDistance.
const EarthRadiusMiles = 3958.8

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CalculateDistance returns the haversine distance in miles between two
// coordinates, rounded to one decimal place.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(EarthRadiusMiles*c*10) / 10
}

// Between is CalculateDistance for two points.
func Between(a, b Point) float64 {
	return CalculateDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Vendor is a vendor search result. Distance is derived from the search
// origin and never persisted.
type Vendor struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Rating    float64  `json:"rating"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Favorite  bool     `json:"favorite"`
	Distance  float64  `json:"distance"`
}

// RankVendors computes Distance for every vendor with coordinates, drops
// those outside radiusMiles (radiusMiles <= 0 keeps all), and orders the
// rest by specialty, then distance, then name. The input is not modified.
func RankVendors(vendors []Vendor, origin Point, radiusMiles float64) []Vendor {
	ranked := make([]Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v.Latitude == nil || v.Longitude == nil {
			continue
		}
		v.Distance = Between(origin, Point{Lat: *v.Latitude, Lon: *v.Longitude})
		if radiusMiles > 0 && v.Distance > radiusMiles {
			continue
		}
		ranked = append(ranked, v)
	}

	slices.SortStableFunc(ranked, func(a, b Vendor) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Specialty), strings.ToLower(b.Specialty)),
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
		)
	})
	return ranked
}
