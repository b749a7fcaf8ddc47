// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package emergency

import (
	"math"
	"strings"
)

// # Facility Model

// FacilityType is the coarse category used by the map markers.
type FacilityType string

const (
	FacilityHospital FacilityType = "hospital"
	FacilityClinic   FacilityType = "clinic"
	FacilityPolice   FacilityType = "police"
	FacilityFire     FacilityType = "fire"
	FacilityDefault  FacilityType = "default"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Facility is one emergency service near the caller.
type Facility struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Location  Point        `json:"location"`
	Type      FacilityType `json:"type"`
	Amenity   string       `json:"amenity,omitempty"`
	Address   string       `json:"address,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Emergency bool         `json:"emergency"`

	// Distance is the great-circle distance from the caller in km, rounded to 0.1.
	Distance float64 `json:"distance"`
}

// # Geometry

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// # Classification

// classify maps OpenStreetMap tags to a facility type. ok is false when the
// element is not an emergency service.
func classify(tags map[string]string) (FacilityType, bool) {
	switch {
	case tags["amenity"] == "police":
		return FacilityPolice, true
	case tags["amenity"] == "fire_station":
		return FacilityFire, true
	case tags["amenity"] == "hospital", tags["healthcare"] == "hospital":
		return FacilityHospital, true
	case tags["amenity"] == "clinic":
		return FacilityClinic, true
	}
	return "", false
}

// unnamed builds the placeholder label for a facility without a name tag.
func unnamed(kind FacilityType) string {
	label := string(kind)
	if label == "" {
		return "Unnamed"
	}
	return "Unnamed " + strings.ToUpper(label[:1]) + label[1:]
}

// firstNonEmpty returns the first non-blank value.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
