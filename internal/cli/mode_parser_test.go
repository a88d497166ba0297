package cli

import (
	"slices"
	"testing"
)

func TestParseModeFlagForm(t *testing.T) {
	mode, rest, err := ParseMode([]string{"--mode=booking-service", "--max-concurrent=150"})
	if err != nil {
		t.Fatalf("ParseMode() error = %v", err)
	}
	if mode != ModeBooking {
		t.Fatalf("mode = %q, want %q", mode, ModeBooking)
	}
	if !slices.Equal(rest, []string{"--max-concurrent=150"}) {
		t.Fatalf("rest = %v", rest)
	}
}

func TestParseModeSubcommandShorthand(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"booking-service", ModeBooking},
		{"booking", ModeBooking},
		{"b", ModeBooking},
		{"trip-service", ModeTrip},
		{"trip", ModeTrip},
		{"t", ModeTrip},
		{"grocery-service", ModeGrocery},
		{"grocery", ModeGrocery},
		{"g", ModeGrocery},
	}
	for _, tt := range tests {
		mode, _, err := ParseMode([]string{tt.arg})
		if err != nil {
			t.Fatalf("ParseMode(%q) error = %v", tt.arg, err)
		}
		if mode != tt.want {
			t.Fatalf("ParseMode(%q) = %q, want %q", tt.arg, mode, tt.want)
		}
	}
}

func TestParseModeAliasInFlagForm(t *testing.T) {
	mode, _, err := ParseMode([]string{"--mode=grocery"})
	if err != nil {
		t.Fatalf("ParseMode() error = %v", err)
	}
	if mode != ModeGrocery {
		t.Fatalf("mode = %q, want %q", mode, ModeGrocery)
	}
}

func TestParseModeMissing(t *testing.T) {
	if _, _, err := ParseMode([]string{"--max-concurrent=10"}); err == nil {
		t.Fatal("expected error for missing mode")
	}
}

func TestParseModeKeepsUnknownArgs(t *testing.T) {
	mode, rest, err := ParseMode([]string{"trip", "--prefetch=8", "extra"})
	if err != nil {
		t.Fatalf("ParseMode() error = %v", err)
	}
	if mode != ModeTrip {
		t.Fatalf("mode = %q, want %q", mode, ModeTrip)
	}
	if !slices.Equal(rest, []string{"--prefetch=8", "extra"}) {
		t.Fatalf("rest = %v", rest)
	}
}
