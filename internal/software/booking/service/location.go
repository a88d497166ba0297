package service

import (
	"context"

	"zorp/internal/domain/catalog"
	"zorp/internal/domain/geo"
	"zorp/internal/ports"
)

// CurrentLocation resolves the rider's position. Resolution failures are
// absorbed into the Lagos fallback so the map always has a center.
func (service *Service) CurrentLocation(ctx context.Context) ports.LocationResult {
	loc, err := service.resolver.Resolve(ctx)
	if err != nil {
		service.logger.Debug(ctx, "geolocation_fallback", "Position lookup failed, using fallback",
			map[string]any{"error": err.Error()})
	}

	return ports.LocationResult{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		Address:   loc.Address,
		Fallback:  loc.Address == geo.FallbackAddress,
	}
}

// RideOptions returns the catalog filtered by passenger count and class.
// Passengers <= 0 means "any seat count"; an empty class means basic.
func (service *Service) RideOptions(ctx context.Context, passengers int, rideClass string) ([]catalog.RideOption, error) {
	class := catalog.ClassBasic
	if rideClass != "" {
		var err error
		class, err = catalog.ParseRideClass(rideClass)
		if err != nil {
			return nil, err
		}
	}

	if passengers <= 0 {
		passengers = 1
	}

	return catalog.Filter(catalog.Options(), passengers, class), nil
}
