package address

import (
	"regexp"
	"strings"
)

// Components is the structured breakdown a geocoder returns for a result.
// Field names follow the Nominatim "address" object.
type Components struct {
	HouseNumber  string `json:"house_number,omitempty"`
	Road         string `json:"road,omitempty"`
	Suburb       string `json:"suburb,omitempty"`
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Village      string `json:"village,omitempty"`
	Hamlet       string `json:"hamlet,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Values lists the non-empty component values, used for exact-match checks.
func (c Components) Values() []string {
	all := []string{
		c.HouseNumber, c.Road, c.Suburb, c.City, c.Town, c.Village, c.Hamlet,
		c.Municipality, c.County, c.State, c.Postcode, c.Country,
	}
	values := all[:0]
	for _, v := range all {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Locality picks the most specific populated place name.
func (c Components) Locality() string {
	for _, candidate := range []string{c.City, c.Town, c.Village, c.Suburb, c.Hamlet, c.Municipality} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

var postcodeRe = regexp.MustCompile(`^\s*(\d{5})`)

// FromComponents builds the form record from a geocoder's structured
// components. Fields the components leave empty are back-filled from a
// free-text parse of displayName.
func FromComponents(c Components, displayName string) (FormData, bool) {
	street := strings.TrimSpace(strings.TrimSpace(c.HouseNumber) + " " + strings.TrimSpace(c.Road))
	city := strings.TrimSpace(c.Locality())

	state := strings.TrimSpace(c.State)
	if code, ok := StateCode(state); ok {
		state = code
	} else if len(state) > 2 {
		state = ""
	}

	zip := ""
	if m := postcodeRe.FindStringSubmatch(c.Postcode); m != nil {
		zip = m[1]
	}

	if street == "" || city == "" || state == "" || zip == "" {
		if parsed, ok := ParseComponents(displayName); ok {
			street = firstNonEmpty(street, parsed.StreetAddress)
			city = firstNonEmpty(city, parsed.City)
			state = firstNonEmpty(state, parsed.State)
			zip = firstNonEmpty(zip, parsed.ZipCode)
		}
	}

	result := FormData{
		StreetAddress: street,
		City:          city,
		State:         state,
		ZipCode:       zip,
	}
	if street != "" && city != "" {
		result.FullAddress = Compose(street, city, state, zip)
	} else {
		result.FullAddress = normalize(displayName)
	}

	if street == "" && city == "" && state == "" && zip == "" {
		result.StreetAddress = result.FullAddress
		return result, false
	}
	return result, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
