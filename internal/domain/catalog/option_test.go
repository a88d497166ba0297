package catalog

import (
	"errors"
	"testing"
)

func TestFilterPredicate(t *testing.T) {
	options := Options()

	for passengers := 1; passengers <= 6; passengers++ {
		for _, class := range []RideClass{ClassBasic, ClassLuxury} {
			got := Filter(options, passengers, class)
			for _, option := range got {
				if option.Capacity < passengers {
					t.Fatalf("passengers=%d class=%s: option %s has capacity %d",
						passengers, class, option.ID, option.Capacity)
				}
				if option.Class != class {
					t.Fatalf("passengers=%d class=%s: option %s has class %s",
						passengers, class, option.ID, option.Class)
				}
			}
		}
	}
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	options := Options()

	got := Filter(options, 1, ClassBasic)
	if len(got) != 2 {
		t.Fatalf("expected 2 basic options, got %d", len(got))
	}
	if got[0].ID != "basic-sedan" || got[1].ID != "basic-suv" {
		t.Fatalf("declaration order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFilterScenarios(t *testing.T) {
	options := Options()

	// 5 passengers on the basic tier fit only the 6-seat SUV.
	got := Filter(options, 5, ClassBasic)
	if len(got) != 1 || got[0].ID != "basic-suv" {
		t.Fatalf("passengers=5 basic: expected only basic-suv, got %+v", got)
	}

	// 2 passengers on luxury fit both luxury options, in declared order.
	got = Filter(options, 2, ClassLuxury)
	if len(got) != 2 || got[0].ID != "luxury-sedan" || got[1].ID != "luxury-suv" {
		t.Fatalf("passengers=2 luxury: expected both luxury options, got %+v", got)
	}
}

func TestFilterEmptyResult(t *testing.T) {
	got := Filter(Options(), 7, ClassBasic)
	if len(got) != 0 {
		t.Fatalf("expected empty result for 7 passengers, got %d options", len(got))
	}
}

func TestByID(t *testing.T) {
	options := Options()

	option, ok := ByID(options, "luxury-sedan")
	if !ok || option.Name != "Luxury Sedan" {
		t.Fatalf("expected luxury sedan, got %+v ok=%v", option, ok)
	}

	if _, ok := ByID(options, "rickshaw"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestParseRideClass(t *testing.T) {
	tests := []struct {
		in   string
		want RideClass
		ok   bool
	}{
		{in: "basic", want: ClassBasic, ok: true},
		{in: " Luxury ", want: ClassLuxury, ok: true},
		{in: "premium", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, err := ParseRideClass(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Fatalf("ParseRideClass(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidRideClass) {
			t.Fatalf("ParseRideClass(%q) expected ErrInvalidRideClass, got %v", tt.in, err)
		}
	}
}
