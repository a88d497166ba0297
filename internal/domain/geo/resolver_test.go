package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveSuccess(t *testing.T) {
	provider := PositionProviderFunc(func(ctx context.Context) (float64, float64, error) {
		return 6.4281, 3.4219, nil
	})

	loc, err := NewResolver(provider, time.Second).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if loc.Lat != 6.4281 || loc.Lng != 3.4219 {
		t.Fatalf("unexpected coordinates: %+v", loc)
	}
	if loc.Address != ResolvedAddress {
		t.Fatalf("expected %q address, got %q", ResolvedAddress, loc.Address)
	}
}

func TestResolveProviderErrorFallsBack(t *testing.T) {
	provider := PositionProviderFunc(func(ctx context.Context) (float64, float64, error) {
		return 0, 0, errors.New("position unavailable")
	})

	loc, err := NewResolver(provider, time.Second).Resolve(context.Background())
	if err == nil {
		t.Fatalf("expected provider error to be reported")
	}
	if loc != Fallback() {
		t.Fatalf("expected fallback location, got %+v", loc)
	}
}

func TestResolveNoProviderFallsBack(t *testing.T) {
	loc, err := NewResolver(nil, time.Second).Resolve(context.Background())
	if err != nil {
		t.Fatalf("capability absence is not an error: %v", err)
	}
	if loc.Lat != FallbackLat || loc.Lng != FallbackLng || loc.Address != FallbackAddress {
		t.Fatalf("expected fallback location, got %+v", loc)
	}
}

func TestResolveTimeoutFallsBack(t *testing.T) {
	provider := PositionProviderFunc(func(ctx context.Context) (float64, float64, error) {
		<-ctx.Done()
		return 0, 0, ctx.Err()
	})

	start := time.Now()
	loc, err := NewResolver(provider, 20*time.Millisecond).Resolve(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if loc != Fallback() {
		t.Fatalf("expected fallback location, got %+v", loc)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("resolver did not honor its timeout")
	}
}

func TestResolveCancelledCallerFallsBack(t *testing.T) {
	provider := PositionProviderFunc(func(ctx context.Context) (float64, float64, error) {
		<-ctx.Done()
		return 0, 0, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loc, err := NewResolver(provider, time.Second).Resolve(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
	if loc != Fallback() {
		t.Fatalf("expected fallback location, got %+v", loc)
	}
}

func TestResolveRejectsOutOfRangeCoordinates(t *testing.T) {
	provider := PositionProviderFunc(func(ctx context.Context) (float64, float64, error) {
		return 123.0, 3.4, nil
	})

	loc, err := NewResolver(provider, time.Second).Resolve(context.Background())
	if !errors.Is(err, ErrInvalidLatitude) {
		t.Fatalf("expected ErrInvalidLatitude, got %v", err)
	}
	if loc != Fallback() {
		t.Fatalf("expected fallback location, got %+v", loc)
	}
}
