package maps

import (
	"bytes"
	"encoding/json"
	"strconv"

	"landlord_portal_backend/internal/address"
)

// Match types reported on GeocodingResult.
const (
	MatchExact   = "exact"
	MatchPartial = "partial"
)

// SearchOptions narrows a lookup. Zero values fall back to service defaults.
type SearchOptions struct {
	Limit       int
	MinResults  int
	CountryCode string
	Language    string
}

// GeocodingResult is one address candidate. It is never persisted.
type GeocodingResult struct {
	ID                string              `json:"id"`
	DisplayName       string              `json:"display_name"`
	Lat               float64             `json:"lat"`
	Lon               float64             `json:"lon"`
	MatchType         string              `json:"matchType"`
	AddressComponents *address.Components `json:"address_components,omitempty"`
	Form              address.FormData    `json:"form"`
}

// SearchResult is the outcome of one lookup. Superseded is set when a newer
// lookup for the same input field replaced this one; its results are empty
// and must be ignored.
type SearchResult struct {
	Results        []GeocodingResult `json:"results"`
	NoExactMatches bool              `json:"noExactMatches"`
	Superseded     bool              `json:"superseded,omitempty"`
}

// Coordinates is a resolved lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Query      string `form:"q"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=20"`
	MinResults int    `form:"minResults" binding:"omitempty,min=1,max=20"`
	Country    string `form:"country" binding:"omitempty,len=2,alpha"`
	Field      string `form:"field" binding:"omitempty,max=64"`
}

// ReverseRequest carries coordinates for "use my current location".
type ReverseRequest struct {
	Lat *float64 `form:"lat" binding:"required,latitude"`
	Lon *float64 `form:"lon" binding:"required,longitude"`
}

// ParseRequest is the body of POST /maps/parse.
type ParseRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

// ParseResponse reports the parsed record and whether anything was derived.
type ParseResponse struct {
	Form   address.FormData `json:"form"`
	Parsed bool             `json:"parsed"`
}

// flexFloat accepts coordinates encoded as JSON strings or numbers.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	PlaceID     json.Number        `json:"place_id"`
	DisplayName string             `json:"display_name"`
	Lat         flexFloat          `json:"lat"`
	Lon         flexFloat          `json:"lon"`
	Address     address.Components `json:"address"`
	Error       string             `json:"error,omitempty"`
}
