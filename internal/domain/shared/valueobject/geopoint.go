package valueobject

import (
	"fmt"
	"math"
)

// earthRadiusM is the mean Earth radius in meters used for haversine distances.
const earthRadiusM = 6371000.0

// GeoPoint is a value object representing a WGS84 coordinate pair.
// It is immutable - construct via NewGeoPoint.
type GeoPoint struct {
	lat float64
	lng float64
}

// NewGeoPoint creates a GeoPoint after validating coordinate ranges
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("latitude out of range: %f", lat)
	}
	if lng < -180 || lng > 180 {
		return GeoPoint{}, fmt.Errorf("longitude out of range: %f", lng)
	}
	return GeoPoint{lat: lat, lng: lng}, nil
}

// Lat returns the latitude in degrees
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsZero returns true for the zero coordinate (0,0), which the domain
// treats as "no location recorded"
func (p GeoPoint) IsZero() bool {
	return p.lat == 0 && p.lng == 0
}

// DistanceM returns the haversine great-circle distance to other in meters
func (p GeoPoint) DistanceM(other GeoPoint) float64 {
	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLng := (other.lng - p.lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// Equals returns true if both points have identical coordinates
func (p GeoPoint) Equals(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String returns "lat,lng" with six decimal places
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.lat, p.lng)
}
