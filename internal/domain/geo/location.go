package geo

import (
	"errors"
	"math"
	"strings"
)

// Location is an immutable coordinate pair with a display address.
// Resolved once per screen session and never persisted.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// NewLocation validates coordinate ranges and trims the address label.
func NewLocation(lat, lng float64, address string) (Location, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Location{}, ErrInvalidLatitude
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return Location{}, ErrInvalidLongitude
	}
	return Location{Lat: lat, Lng: lng, Address: strings.TrimSpace(address)}, nil
}
