package address

import (
	"sort"
	"strings"
)

// stateNames maps lowercase full names to USPS codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
	"puerto rico": "PR", "guam": "GU", "u.s. virgin islands": "VI",
	"american samoa": "AS", "northern mariana islands": "MP",
}

// stateCodes is the set of valid two-letter codes.
var stateCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stateNames))
	for _, code := range stateNames {
		m[code] = struct{}{}
	}
	return m
}()

// namesLongestFirst lets "west virginia" win over "virginia".
var namesLongestFirst = func() []string {
	names := make([]string, 0, len(stateNames))
	for name := range stateNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// IsStateCode reports whether code is a known two-letter state code.
// The comparison is case-sensitive: "IN" is a state, "in" is a word.
func IsStateCode(code string) bool {
	_, ok := stateCodes[code]
	return ok
}

// StateCode converts a state name or code to its two-letter code.
func StateCode(nameOrCode string) (string, bool) {
	trimmed := strings.TrimSpace(nameOrCode)
	if len(trimmed) == 2 {
		upper := strings.ToUpper(trimmed)
		if IsStateCode(upper) {
			return upper, true
		}
	}
	code, ok := stateNames[strings.ToLower(trimmed)]
	return code, ok
}
