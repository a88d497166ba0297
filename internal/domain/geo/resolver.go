package geo

import (
	"context"
	"time"
)

// Fallback coordinates used whenever the device position cannot be read
// (Lagos, Nigeria).
const (
	FallbackLat     = 6.5244
	FallbackLng     = 3.3792
	FallbackAddress = "Lagos, Nigeria"

	// ResolvedAddress labels a successfully resolved device position.
	ResolvedAddress = "Current Location"

	defaultResolveTimeout = 5 * time.Second
)

// PositionProvider is the port to a device/platform position source.
// Implementations must honor ctx cancellation.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (lat, lng float64, err error)
}

// PositionProviderFunc adapts a function to the PositionProvider interface.
type PositionProviderFunc func(ctx context.Context) (float64, float64, error)

func (f PositionProviderFunc) CurrentPosition(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// Resolver performs a one-shot position read with a bounded timeout.
// It is not a subscription: callers resolve once per session and keep
// the returned Location.
type Resolver struct {
	provider PositionProvider
	timeout  time.Duration
}

// NewResolver builds a resolver around the given provider. A nil provider
// means the capability is absent and Resolve always yields the fallback.
func NewResolver(provider PositionProvider, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	return &Resolver{provider: provider, timeout: timeout}
}

// Resolve reads the current position. Provider absence, errors, timeouts
// and ctx cancellation all degrade to the fixed fallback location; the
// error is reported alongside so callers can log it, but the Location is
// always usable.
func (resolver *Resolver) Resolve(ctx context.Context) (Location, error) {
	if resolver.provider == nil {
		return Fallback(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, resolver.timeout)
	defer cancel()

	lat, lng, err := resolver.provider.CurrentPosition(ctx)
	if err != nil {
		return Fallback(), err
	}

	loc, err := NewLocation(lat, lng, ResolvedAddress)
	if err != nil {
		return Fallback(), err
	}
	return loc, nil
}

// Fallback returns the fixed default location.
func Fallback() Location {
	return Location{Lat: FallbackLat, Lng: FallbackLng, Address: FallbackAddress}
}
