package trip

import (
	"errors"
	"testing"
)

func newTestTrip(t *testing.T) *Trip {
	t.Helper()
	trip, err := NewTrip("t-1", "u-1",
		Driver{Name: "John D.", Phone: "+234 800 123 4567", Rating: 4.8, Avatar: "JD"},
		"Toyota Camry - ABC 123 XY", "Victoria Island, Lagos", "Lekki Phase 1, Lagos", "5 min", 1200)
	if err != nil {
		t.Fatalf("new trip: %v", err)
	}
	return trip
}

func TestNewTripDefaults(t *testing.T) {
	trip := newTestTrip(t)

	if trip.Status != StatusEnRoute {
		t.Fatalf("expected en_route, got %v", trip.Status)
	}
	if trip.PaymentCompleted || trip.PaymentReleased {
		t.Fatalf("new trip must not be paid or released")
	}
}

func TestNewTripValidation(t *testing.T) {
	if _, err := NewTrip("", "u-1", Driver{}, "", "", "", "", 0); !errors.Is(err, ErrTripIDRequired) {
		t.Fatalf("expected ErrTripIDRequired, got %v", err)
	}
	if _, err := NewTrip("t-1", "  ", Driver{}, "", "", "", "", 0); !errors.Is(err, ErrRiderRequired) {
		t.Fatalf("expected ErrRiderRequired, got %v", err)
	}
}

func TestReleasePaymentRequiresCompletedPayment(t *testing.T) {
	trip := newTestTrip(t)

	if err := trip.ReleasePayment(); !errors.Is(err, ErrNotPaid) {
		t.Fatalf("expected ErrNotPaid, got %v", err)
	}

	trip.MarkPaid()
	if !trip.PaymentCompleted {
		t.Fatalf("expected payment completed after MarkPaid")
	}

	if err := trip.ReleasePayment(); err != nil {
		t.Fatalf("release payment: %v", err)
	}
	if !trip.PaymentReleased || trip.ReleasedAt == nil {
		t.Fatalf("expected released state recorded")
	}

	if err := trip.ReleasePayment(); !errors.Is(err, ErrAlreadyReleased) {
		t.Fatalf("expected ErrAlreadyReleased on second release, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	trip := newTestTrip(t)

	if err := trip.SetStatus(StatusArrived); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if trip.Status != StatusArrived {
		t.Fatalf("expected arrived, got %v", trip.Status)
	}

	if err := trip.SetStatus(Status("teleporting")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{in: "en_route", want: StatusEnRoute, ok: true},
		{in: " ARRIVED ", want: StatusArrived, ok: true},
		{in: "completed", want: StatusCompleted, ok: true},
		{in: "parked", ok: false},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Fatalf("ParseStatus(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("ParseStatus(%q) expected ErrInvalidStatus, got %v", tt.in, err)
		}
	}
}
