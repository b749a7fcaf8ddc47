// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package emergency

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultOverpassURL is the public Overpass interpreter endpoint.
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// facilitySelectors are the tag filters queried for both nodes and ways.
var facilitySelectors = []string{
	`["amenity"="hospital"]`,
	`["amenity"="clinic"]`,
	`["healthcare"="hospital"]`,
	`["amenity"="police"]`,
	`["amenity"="fire_station"]`,
}

// OverpassClient fetches emergency services from an Overpass API endpoint.
type OverpassClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewOverpassClient creates a client bounded by timeout per lookup.
func NewOverpassClient(endpoint string, timeout time.Duration, logger *slog.Logger) *OverpassClient {
	if endpoint == "" {
		endpoint = DefaultOverpassURL
	}
	return &OverpassClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

/*
Nearby returns the emergency services within radiusMeters of origin, closest first.

Ways are reported at their centre point. Elements without coordinates or
without a recognised emergency tag are skipped.

Returns:
  - []Facility: Sorted by ascending distance (never nil)
  - error: Transport, status or decoding failures
*/
func (overpass *OverpassClient) Nearby(ctx context.Context, origin Point, radiusMeters int) ([]Facility, error) {

	// ── 1. Query ─────────────────────────────────────────────────────────
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, overpass.endpoint,
		strings.NewReader(buildQuery(origin, radiusMeters, overpass.client.Timeout)))
	if err != nil {
		return nil, fmt.Errorf("overpass_request_build_failed: %w", err)
	}
	request.Header.Set("Content-Type", "text/plain; charset=utf-8")
	request.Header.Set("Accept", "application/json")

	started := time.Now()
	response, err := overpass.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("overpass_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, fmt.Errorf("overpass_status_%d: %s", response.StatusCode, strings.TrimSpace(string(snippet)))
	}

	// ── 2. Decode ────────────────────────────────────────────────────────
	var payload overpassResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("overpass_decode_failed: %w", err)
	}

	// ── 3. Convert ───────────────────────────────────────────────────────
	facilities := toFacilities(origin, payload.Elements)

	overpass.logger.Debug("overpass_lookup",
		slog.Int("radius_m", radiusMeters),
		slog.Int("elements", len(payload.Elements)),
		slog.Int("facilities", len(facilities)),
		slog.Duration("latency", time.Since(started)),
	)

	return facilities, nil
}

// buildQuery renders the Overpass QL union for every selector as node and way.
func buildQuery(origin Point, radiusMeters int, timeout time.Duration) string {
	serverTimeout := int(timeout.Seconds())
	if serverTimeout <= 0 {
		serverTimeout = 25
	}

	around := fmt.Sprintf("(around:%d,%s,%s)", radiusMeters,
		strconv.FormatFloat(origin.Lat, 'f', -1, 64),
		strconv.FormatFloat(origin.Lng, 'f', -1, 64))

	var query strings.Builder
	fmt.Fprintf(&query, "[out:json][timeout:%d];\n(\n", serverTimeout)
	for _, selector := range facilitySelectors {
		fmt.Fprintf(&query, "  node%s%s;\n", selector, around)
		fmt.Fprintf(&query, "  way%s%s;\n", selector, around)
	}
	query.WriteString(");\nout center tags;\n")

	return query.String()
}

// toFacilities converts raw elements, dropping non-services and unplaced ways.
func toFacilities(origin Point, elements []overpassElement) []Facility {
	facilities := make([]Facility, 0, len(elements))

	for _, element := range elements {
		kind, ok := classify(element.Tags)
		if !ok {
			continue
		}

		location, ok := element.point()
		if !ok {
			continue
		}

		facilities = append(facilities, Facility{
			ID:        strconv.FormatInt(element.ID, 10),
			Name:      firstNonEmpty(element.Tags["name"], unnamed(kind)),
			Location:  location,
			Type:      kind,
			Amenity:   firstNonEmpty(element.Tags["amenity"], element.Tags["healthcare"]),
			Address:   firstNonEmpty(element.Tags["addr:full"], element.Tags["addr:street"]),
			Phone:     firstNonEmpty(element.Tags["phone"], element.Tags["contact:phone"]),
			Emergency: element.Tags["emergency"] == "yes",
			Distance:  roundTenth(Haversine(origin, location)),
		})
	}

	slices.SortStableFunc(facilities, func(a, b Facility) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return facilities
}

// # Wire Format

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// point returns the node position or the way centre.
func (element overpassElement) point() (Point, bool) {
	if element.Lat != nil && element.Lon != nil {
		return Point{Lat: *element.Lat, Lng: *element.Lon}, true
	}
	if element.Center != nil {
		return Point{Lat: element.Center.Lat, Lng: element.Center.Lon}, true
	}
	return Point{}, false
}
