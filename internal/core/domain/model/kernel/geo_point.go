package kernel

import (
	"fmt"
	"math"

	"medex/internal/pkg/errs"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("GeoPoint must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate pair reported by a driver device or attached to
// an order's delivery address.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p) // (40.712800, -74.006000)
type GeoPoint struct {
	latitude  float64
	longitude float64

	isSet bool
}

// NewGeoPoint validates both coordinates and returns the point.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{latitude: latitude, longitude: longitude, isSet: true}, nil
}

// MustNewGeoPoint panics on invalid input. Intended for fixtures and constants.
func MustNewGeoPoint(latitude, longitude float64) GeoPoint {
	p, err := NewGeoPoint(latitude, longitude)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Validate returns ErrGeoPointIsNotConstructed for the zero value.
func (p GeoPoint) Validate() error {
	if !p.isSet {
		return ErrGeoPointIsNotConstructed
	}
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%f, %f)", p.latitude, p.longitude)
}

// IsEqual compares coordinates exactly.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.isSet == other.isSet && p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceKm returns the great-circle distance using the haversine formula.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := degreesToRadians(p.latitude)
	lat2 := degreesToRadians(other.latitude)
	dLat := lat2 - lat1
	dLng := degreesToRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Offset returns a point moved by the given deltas in degrees, clamped to the valid range.
// The simulated driver walker uses it.
func (p GeoPoint) Offset(dLat, dLng float64) GeoPoint {
	lat := math.Max(LatitudeMin, math.Min(LatitudeMax, p.latitude+dLat))
	lng := p.longitude + dLng
	if lng > LongitudeMax {
		lng -= 360
	}
	if lng < LongitudeMin {
		lng += 360
	}
	return GeoPoint{latitude: lat, longitude: lng, isSet: true}
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
