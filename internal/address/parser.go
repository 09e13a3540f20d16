// Package address turns free-text US addresses and geocoder component sets
// into the normalized form record used by properties, vendors and leases.
package address

import (
	"regexp"
	"strings"
)

// FormData is the normalized address record. FullAddress is always the
// authoritative free-text form; the structured fields are best-effort
// derivations and may be empty.
type FormData struct {
	StreetAddress string   `json:"streetAddress"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	ZipCode       string   `json:"zipCode"`
	FullAddress   string   `json:"fullAddress"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// Editable form fields accepted by WithField.
const (
	FieldStreetAddress = "streetAddress"
	FieldCity          = "city"
	FieldState         = "state"
	FieldZipCode       = "zipCode"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	commaRe      = regexp.MustCompile(`\s*,[\s,]*`)
	zipRe        = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
	stateCodeRe  = regexp.MustCompile(`\b[A-Z]{2}\b`)
)

type span struct {
	start, end int
}

func (s span) found() bool { return s.end > s.start }

// ParseComponents derives structured fields from a free-text address.
//
// The returned bool is false when nothing could be derived; in that case
// StreetAddress carries the whole input so the caller can still use it. It
// never fails hard.
func ParseComponents(fullAddress string) (FormData, bool) {
	normalized := normalize(fullAddress)
	result := FormData{FullAddress: normalized}
	if normalized == "" {
		return result, false
	}

	zip, zipSpan := findZip(normalized)

	// A state token inside the first comma segment is almost always part of
	// the street ("123 NE 5th Ave"), so only look after it.
	minStateIdx := 0
	if idx := strings.Index(normalized, ","); idx >= 0 {
		minStateIdx = idx
	}
	maxStateIdx := len(normalized)
	if zipSpan.found() {
		maxStateIdx = zipSpan.start
	}
	state, stateSpan := findState(normalized, minStateIdx, maxStateIdx)

	anchor := -1
	switch {
	case stateSpan.found():
		anchor = stateSpan.start
	case zipSpan.found():
		anchor = zipSpan.start
	}

	var city, street string
	switch {
	case anchor < 0:
		city, street = splitCityStreet(normalized, unanchored)
	case strings.Contains(normalized[:anchor], ","):
		city, street = splitCityStreet(normalized[:anchor], segmented)
	default:
		city, street = splitCityStreet(normalized[:anchor], words)
	}

	street = stripStray(street, state, zip)

	result.StreetAddress = street
	result.City = city
	result.State = state
	result.ZipCode = zip

	if street == "" && city == "" && state == "" && zip == "" {
		result.StreetAddress = normalized
		return result, false
	}
	return result, true
}

// WithField applies a manual edit to one structured field and recomputes
// FullAddress from the structured fields. Unknown field names are ignored.
func (f FormData) WithField(field, value string) FormData {
	value = strings.TrimSpace(value)
	switch field {
	case FieldStreetAddress:
		f.StreetAddress = value
	case FieldCity:
		f.City = value
	case FieldState:
		if code, ok := StateCode(value); ok {
			value = code
		}
		f.State = value
	case FieldZipCode:
		f.ZipCode = value
	default:
		return f
	}
	f.FullAddress = Compose(f.StreetAddress, f.City, f.State, f.ZipCode)
	return f
}

// Compose renders structured fields as "street, city, ST zip", skipping
// empty parts.
func Compose(street, city, state, zip string) string {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(street); s != "" {
		parts = append(parts, s)
	}
	if c := strings.TrimSpace(city); c != "" {
		parts = append(parts, c)
	}
	tail := strings.TrimSpace(strings.TrimSpace(state) + " " + strings.TrimSpace(zip))
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

func normalize(input string) string {
	s := whitespaceRe.ReplaceAllString(strings.TrimSpace(input), " ")
	s = commaRe.ReplaceAllString(s, ", ")
	return strings.Trim(s, ", ")
}

// findZip returns the last five-digit group. A number opening the string is
// a house number unless it is the whole input.
func findZip(s string) (string, span) {
	matches := zipRe.FindAllStringSubmatchIndex(s, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m[0] == 0 && m[1] < len(s) {
			continue
		}
		return s[m[2]:m[3]], span{start: m[0], end: m[1]}
	}
	return "", span{}
}

func findState(s string, minIdx, maxIdx int) (string, span) {
	if maxIdx <= minIdx {
		return "", span{}
	}

	matches := stateCodeRe.FindAllStringIndex(s, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m[0] < minIdx || m[1] > maxIdx {
			continue
		}
		if code := s[m[0]:m[1]]; IsStateCode(code) {
			return code, span{start: m[0], end: m[1]}
		}
	}

	// The name ending last wins; on a tie the longer name seen first keeps
	// "west virginia" from losing to "virginia".
	lower := strings.ToLower(s)
	best := span{start: -1, end: -1}
	bestCode := ""
	for _, name := range namesLongestFirst {
		idx := lastWordIndex(lower[:maxIdx], name)
		if idx < 0 || idx < minIdx || idx+len(name) <= best.end {
			continue
		}
		best = span{start: idx, end: idx + len(name)}
		bestCode = stateNames[name]
	}
	if bestCode == "" {
		return "", span{}
	}
	return bestCode, best
}

// lastWordIndex finds the last occurrence of needle bounded by non-letters.
func lastWordIndex(text, needle string) int {
	for end := len(text); end > 0; {
		idx := strings.LastIndex(text[:end], needle)
		if idx < 0 {
			return -1
		}
		after := idx + len(needle)
		if (idx == 0 || !isLetter(text[idx-1])) && (after == len(text) || !isLetter(text[after])) {
			return idx
		}
		end = idx + len(needle) - 1
	}
	return -1
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// prefixShape says how the text in front of the state/ZIP is delimited.
type prefixShape int

const (
	// unanchored: no state or ZIP was found.
	unanchored prefixShape = iota
	// segmented: commas separate the prefix from the state/ZIP.
	segmented
	// words: no commas at all; the city is the last word.
	words
)

// splitCityStreet takes the text in front of the state/ZIP and splits off the
// city, which is the comma segment right before the anchor. Without an anchor
// a city is only assumed when the input has at least two comma segments. A
// lone segment in comma-delimited input is the street when it starts with a
// house number and the city otherwise.
func splitCityStreet(prefix string, shape prefixShape) (city, street string) {
	prefix = strings.Trim(strings.TrimSpace(prefix), ", ")
	if prefix == "" {
		return "", ""
	}

	if idx := strings.LastIndex(prefix, ", "); idx >= 0 {
		return strings.TrimSpace(prefix[idx+2:]), strings.Trim(prefix[:idx], ", ")
	}
	switch shape {
	case unanchored:
		return "", ""
	case segmented:
		if isDigit(prefix[0]) {
			return "", prefix
		}
		return prefix, ""
	}

	tokens := strings.Fields(prefix)
	if len(tokens) == 1 {
		return tokens[0], ""
	}
	return tokens[len(tokens)-1], strings.Join(tokens[:len(tokens)-1], " ")
}

func stripStray(street, state, zip string) string {
	if street == "" {
		return ""
	}
	tokens := strings.Fields(street)
	kept := tokens[:0]
	for i, tok := range tokens {
		bare := strings.Trim(tok, ",")
		// Keep the leading house number even if it equals the ZIP.
		if i > 0 && ((state != "" && bare == state) || (zip != "" && bare == zip)) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Trim(strings.Join(kept, " "), ", ")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
