package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"landlord_portal_backend/internal/address"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/config"
	"landlord_portal_backend/platform/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	providerName     = "nominatim"
	defaultLimit     = 5
	minQueryLength   = 2
	maxResponseBytes = 2 << 20
	msgUnavailable   = "address lookup service unavailable, please try again"
)

// Cache stores raw provider payloads. *cache.Store satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Service talks to a Nominatim-compatible geocoding provider.
type Service struct {
	client    *http.Client
	baseURL   string
	userAgent string
	country   string
	language  string
	timeout   time.Duration
	limiter   *rate.Limiter
	cache     Cache
	group     singleflight.Group
	log       *logger.Logger
}

// NewService creates the geocoding client. cache may be nil.
func NewService(cfg config.GeocoderConfig, cache Cache, log *logger.Logger) *Service {
	limit := rate.Inf
	if rps := cfg.GetGeocoderRatePerSecond(); rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Service{
		client:    &http.Client{},
		baseURL:   strings.TrimRight(cfg.GetGeocoderBaseURL(), "/"),
		userAgent: cfg.GetGeocoderUserAgent(),
		country:   strings.ToLower(cfg.GetGeocoderCountryCode()),
		language:  cfg.GetGeocoderLanguage(),
		timeout:   cfg.GetGeocoderTimeout(),
		limiter:   rate.NewLimiter(limit, 1),
		cache:     cache,
		log:       log,
	}
}

// SearchAddresses returns address candidates for query, exact matches first.
//
// Queries shorter than two characters return an empty result without a
// provider call. A cancelled context resolves to an empty result, never an
// error. For purely numeric queries (ZIP prefixes) the first pass keeps only
// exact matches; when fewer than MinResults are found the lookup is repeated
// as free text and NoExactMatches is set.
func (s *Service) SearchAddresses(ctx context.Context, query string, opts SearchOptions) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLength {
		return SearchResult{Results: []GeocodingResult{}}, nil
	}
	opts = s.withDefaults(opts)

	var (
		result SearchResult
		err    error
	)
	if isNumeric(query) {
		result, err = s.searchNumeric(ctx, query, opts)
	} else {
		result, err = s.searchText(ctx, query, opts)
	}
	if err != nil {
		if isCancellation(ctx, err) {
			return SearchResult{Results: []GeocodingResult{}}, nil
		}
		return SearchResult{}, err
	}
	return result, nil
}

func (s *Service) searchText(ctx context.Context, query string, opts SearchOptions) (SearchResult, error) {
	raw, err := s.search(ctx, url.Values{"q": {query}}, opts)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Results: rank(raw, query, false, opts.Limit)}, nil
}

func (s *Service) searchNumeric(ctx context.Context, query string, opts SearchOptions) (SearchResult, error) {
	raw, err := s.search(ctx, url.Values{"postalcode": {query}}, opts)
	if err != nil {
		return SearchResult{}, err
	}

	exact := make([]GeocodingResult, 0, len(raw))
	for _, r := range raw {
		if isExactMatch(r, query, true) {
			exact = append(exact, toResult(r, true))
		}
	}
	if len(exact) >= opts.MinResults {
		return SearchResult{Results: truncate(exact, opts.Limit)}, nil
	}

	fallback, err := s.search(ctx, url.Values{"q": {query}}, opts)
	if err != nil {
		return SearchResult{}, err
	}

	merged := exact
	seen := make(map[string]struct{}, len(exact))
	for _, r := range exact {
		seen[r.ID] = struct{}{}
	}
	for _, r := range rank(fallback, query, true, 0) {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		merged = append(merged, r)
	}

	return SearchResult{
		Results:        truncate(merged, opts.Limit),
		NoExactMatches: true,
	}, nil
}

// GetCoordinates resolves the first candidate for a full address. It returns
// nil when nothing matched or the lookup was cancelled.
func (s *Service) GetCoordinates(ctx context.Context, fullAddress string, opts SearchOptions) (*Coordinates, error) {
	fullAddress = strings.TrimSpace(fullAddress)
	if len([]rune(fullAddress)) < minQueryLength {
		return nil, nil
	}
	opts = s.withDefaults(opts)
	opts.Limit = 1

	raw, err := s.search(ctx, url.Values{"q": {fullAddress}}, opts)
	if err != nil {
		if isCancellation(ctx, err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return &Coordinates{Lat: float64(raw[0].Lat), Lng: float64(raw[0].Lon)}, nil
}

// ReverseGeocode resolves coordinates to an address. Results outside the
// country restriction are dropped.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lon float64, opts SearchOptions) (*GeocodingResult, error) {
	opts = s.withDefaults(opts)

	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', 6, 64)},
		"format":         {"jsonv2"},
		"addressdetails": {"1"},
		"zoom":           {"18"},
	}
	if opts.Language != "" {
		params.Set("accept-language", opts.Language)
	}

	body, err := s.fetch(ctx, "reverse", params)
	if err != nil {
		if isCancellation(ctx, err) {
			return nil, nil
		}
		return nil, err
	}

	var raw nominatimResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.log.UpstreamError(providerName, "reverse", 0, err)
		return nil, apperr.Unavailable(msgUnavailable, err)
	}
	if raw.Error != "" || raw.DisplayName == "" {
		return nil, nil
	}
	if opts.CountryCode != "" && !strings.EqualFold(raw.Address.CountryCode, opts.CountryCode) {
		return nil, nil
	}

	result := toResult(raw, true)
	return &result, nil
}

func (s *Service) search(ctx context.Context, params url.Values, opts SearchOptions) ([]nominatimResponse, error) {
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(opts.Limit*2))
	if opts.CountryCode != "" {
		params.Set("countrycodes", opts.CountryCode)
	}
	if opts.Language != "" {
		params.Set("accept-language", opts.Language)
	}

	body, err := s.fetch(ctx, "search", params)
	if err != nil {
		return nil, err
	}

	var raw []nominatimResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.log.UpstreamError(providerName, "search", 0, err)
		return nil, apperr.Unavailable(msgUnavailable, err)
	}
	return raw, nil
}

// fetch returns the provider payload for endpoint+params. Identical
// concurrent requests share one upstream call, which runs detached from any
// single caller so an abandoned caller never fails the others; each caller
// still stops waiting as soon as its own context ends.
func (s *Service) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	key := endpoint + "?" + params.Encode()

	if s.cache != nil {
		if body, ok, err := s.cache.Get(ctx, key); err != nil {
			s.log.Warn("geocode cache read failed", "error", err)
		} else if ok {
			return body, nil
		}
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.doRequest(callCtx, endpoint, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (s *Service) doRequest(ctx context.Context, endpoint, key string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, apperr.Unavailable(msgUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+key, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.UpstreamError(providerName, endpoint, 0, err)
		return nil, apperr.Unavailable(msgUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.UpstreamError(providerName, endpoint, resp.StatusCode, nil)
		return nil, apperr.Unavailable(msgUnavailable, fmt.Errorf("upstream api error: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		s.log.UpstreamError(providerName, endpoint, resp.StatusCode, err)
		return nil, apperr.Unavailable(msgUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body); err != nil {
			s.log.Warn("geocode cache write failed", "error", err)
		}
	}
	return body, nil
}

func (s *Service) withDefaults(opts SearchOptions) SearchOptions {
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.MinResults <= 0 {
		opts.MinResults = 1
	}
	if opts.CountryCode == "" {
		opts.CountryCode = s.country
	}
	opts.CountryCode = strings.ToLower(opts.CountryCode)
	if opts.Language == "" {
		opts.Language = s.language
	}
	return opts
}

// isCancellation reports whether err comes from the caller abandoning the
// lookup rather than from the provider.
func isCancellation(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}

// rank classifies raw candidates and moves exact matches to the front,
// keeping provider order otherwise. limit <= 0 keeps every candidate.
func rank(raw []nominatimResponse, query string, numeric bool, limit int) []GeocodingResult {
	results := make([]GeocodingResult, 0, len(raw))
	for _, r := range raw {
		results = append(results, toResult(r, isExactMatch(r, query, numeric)))
	}
	slices.SortStableFunc(results, func(a, b GeocodingResult) int {
		switch {
		case a.MatchType == b.MatchType:
			return 0
		case a.MatchType == MatchExact:
			return -1
		default:
			return 1
		}
	})
	return truncate(results, limit)
}

func truncate(results []GeocodingResult, limit int) []GeocodingResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

func toResult(raw nominatimResponse, exact bool) GeocodingResult {
	matchType := MatchPartial
	if exact {
		matchType = MatchExact
	}

	components := raw.Address
	form, _ := address.FromComponents(components, raw.DisplayName)
	lat, lon := float64(raw.Lat), float64(raw.Lon)
	form.Latitude = &lat
	form.Longitude = &lon

	return GeocodingResult{
		ID:                raw.PlaceID.String(),
		DisplayName:       raw.DisplayName,
		Lat:               lat,
		Lon:               lon,
		MatchType:         matchType,
		AddressComponents: &components,
		Form:              form,
	}
}

// isExactMatch reports whether any address component equals the query
// (case-insensitive) or, for numeric queries, whether the number appears as a
// whole token in the display name.
func isExactMatch(raw nominatimResponse, query string, numeric bool) bool {
	for _, value := range raw.Address.Values() {
		if strings.EqualFold(strings.TrimSpace(value), query) {
			return true
		}
	}
	if numeric {
		return containsNumberToken(raw.DisplayName, query)
	}
	return false
}

func containsNumberToken(text, number string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], number)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(number)
		if (start == 0 || !isDigit(text[start-1])) && (end == len(text) || !isDigit(text[end])) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
