package catalog

import (
	"errors"
	"strings"
)

// RideClass splits the catalog into the two bookable tiers.
type RideClass string

const (
	ClassBasic  RideClass = "basic"
	ClassLuxury RideClass = "luxury"
)

var ErrInvalidRideClass = errors.New("invalid ride class")

// ParseRideClass normalizes and validates a ride class string.
func ParseRideClass(s string) (RideClass, error) {
	class := RideClass(strings.ToLower(strings.TrimSpace(s)))
	switch class {
	case ClassBasic, ClassLuxury:
		return class, nil
	default:
		return "", ErrInvalidRideClass
	}
}

// Valid reports whether the class is a known tier.
func (class RideClass) Valid() bool {
	return class == ClassBasic || class == ClassLuxury
}

// String returns the string representation of the RideClass.
func (class RideClass) String() string { return string(class) }

// IconType hints which vehicle glyph a client should render.
type IconType string

const (
	IconSedan IconType = "sedan"
	IconSUV   IconType = "suv"
)

// RideOption is a static catalog entry. Entries are read-only and never
// created or destroyed at runtime.
type RideOption struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Class         RideClass `json:"type"`
	Capacity      int       `json:"capacity"`
	Price         int       `json:"price"`
	EstimatedTime string    `json:"estimated_time"`
	Rating        float64   `json:"rating"`
	Features      []string  `json:"features"`
	IconType      IconType  `json:"icon_type"`
}

// Options returns the full ride option catalog in declaration order.
// The slice is freshly allocated so callers cannot mutate the catalog.
func Options() []RideOption {
	return []RideOption{
		{
			ID:            "basic-sedan",
			Name:          "Basic Sedan",
			Class:         ClassBasic,
			Capacity:      4,
			Price:         1200,
			EstimatedTime: "5-8 min",
			Rating:        4.5,
			Features:      []string{"Air Conditioning", "Clean Vehicle"},
			IconType:      IconSedan,
		},
		{
			ID:            "basic-suv",
			Name:          "Basic SUV",
			Class:         ClassBasic,
			Capacity:      6,
			Price:         1800,
			EstimatedTime: "7-10 min",
			Rating:        4.6,
			Features:      []string{"More Space", "Air Conditioning"},
			IconType:      IconSUV,
		},
		{
			ID:            "luxury-sedan",
			Name:          "Luxury Sedan",
			Class:         ClassLuxury,
			Capacity:      4,
			Price:         2500,
			EstimatedTime: "3-5 min",
			Rating:        4.9,
			Features:      []string{"Premium Vehicle", "Professional Driver", "Complimentary Water"},
			IconType:      IconSedan,
		},
		{
			ID:            "luxury-suv",
			Name:          "Luxury SUV",
			Class:         ClassLuxury,
			Capacity:      6,
			Price:         3200,
			EstimatedTime: "4-6 min",
			Rating:        4.8,
			Features:      []string{"Premium SUV", "Professional Driver", "WiFi", "Complimentary Snacks"},
			IconType:      IconSUV,
		},
	}
}

// Filter returns the options that can seat the requested passengers and
// match the requested class. Declaration order is preserved; an empty
// result is valid and rendered by clients as "no rides available".
func Filter(options []RideOption, passengers int, class RideClass) []RideOption {
	out := make([]RideOption, 0, len(options))
	for _, option := range options {
		if option.Capacity >= passengers && option.Class == class {
			out = append(out, option)
		}
	}
	return out
}

// ByID looks an option up in the catalog.
func ByID(options []RideOption, id string) (RideOption, bool) {
	for _, option := range options {
		if option.ID == id {
			return option, true
		}
	}
	return RideOption{}, false
}
