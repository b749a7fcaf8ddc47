// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package emergency

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/validate"
)

const (
	// DefaultRadiusKm is the search radius when the caller gives none.
	DefaultRadiusKm = 30.0

	// MaxRadiusKm caps the search radius.
	MaxRadiusKm = 50.0
)

// Field identifiers used in validation errors.
const (
	FieldLat     = "lat"
	FieldLng     = "lng"
	FieldRadius  = "radius"
	FieldCountry = "country"
)

// # Dependencies

// FacilityProvider looks up emergency services around a point.
type FacilityProvider interface {
	Nearby(ctx context.Context, origin Point, radiusMeters int) ([]Facility, error)
}

// ErrCacheMiss is returned by a [FacilityCache] when no entry exists.
var ErrCacheMiss = errors.New("emergency: cache miss")

// FacilityCache memoizes lookups for nearby callers.
type FacilityCache interface {
	Get(ctx context.Context, origin Point, radiusMeters int) ([]Facility, error)
	Set(ctx context.Context, origin Point, radiusMeters int, facilities []Facility) error
}

// Service implements the directory use cases.
type Service struct {
	provider FacilityProvider
	cache    FacilityCache
	logger   *slog.Logger
}

// NewService constructs a directory [Service]. cache may be nil.
func NewService(provider FacilityProvider, cache FacilityCache, logger *slog.Logger) *Service {
	return &Service{provider: provider, cache: cache, logger: logger}
}

// Numbers returns the helplines for country.
func (service *Service) Numbers(country string) CountryNumbers {
	return NumbersFor(country)
}

/*
Facilities returns the emergency services within radiusKm of origin.

A zero radius selects [DefaultRadiusKm]; anything above [MaxRadiusKm] is
clamped. Cache failures are logged and bypassed.

Returns:
  - []Facility: Closest first
  - error: apperr.ValidationError or apperr.ServiceUnavailable
*/
func (service *Service) Facilities(ctx context.Context, origin Point, radiusKm float64) ([]Facility, error) {

	// ── 1. Validation ────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		Custom(FieldLat, math.IsNaN(origin.Lat) || origin.Lat < -90 || origin.Lat > 90, "Latitude must be between -90 and 90").
		Custom(FieldLng, math.IsNaN(origin.Lng) || origin.Lng < -180 || origin.Lng > 180, "Longitude must be between -180 and 180").
		Custom(FieldRadius, math.IsNaN(radiusKm) || radiusKm < 0, "Radius must be positive")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	radiusKm = min(radiusKm, MaxRadiusKm)
	radiusMeters := int(radiusKm * 1000)

	// ── 2. Cache ─────────────────────────────────────────────────────────
	if service.cache != nil {
		cached, err := service.cache.Get(ctx, origin, radiusMeters)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			service.logger.Warn("facility_cache_get_failed", slog.Any("error", err))
		}
	}

	// ── 3. Upstream ──────────────────────────────────────────────────────
	facilities, err := service.provider.Nearby(ctx, origin, radiusMeters)
	if err != nil {
		service.logger.Error("facility_lookup_failed",
			slog.Int("radius_m", radiusMeters),
			slog.Any("error", err),
		)
		return nil, apperr.ServiceUnavailable("Facility lookup is temporarily unavailable", err)
	}

	if service.cache != nil {
		if err := service.cache.Set(ctx, origin, radiusMeters, facilities); err != nil {
			service.logger.Warn("facility_cache_set_failed", slog.Any("error", err))
		}
	}

	return facilities, nil
}
