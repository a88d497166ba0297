package booking

import (
	"errors"
	"testing"

	"zorp/internal/domain/catalog"
)

func strptr(s string) *string { return &s }

func TestOpenResetsToDefaults(t *testing.T) {
	session := Open("b-1", "u-1")

	if session.Stage != StageSelectingPreferences {
		t.Fatalf("expected preferences stage, got %v", session.Stage)
	}
	if session.Selected != nil {
		t.Fatalf("expected no ride selected on open")
	}
	if session.Prefilled {
		t.Fatalf("expected prefilled flag cleared on open")
	}

	want := Preferences{Passengers: 1, RideClass: catalog.ClassBasic}
	if session.Prefs != want {
		t.Fatalf("expected default preferences %+v, got %+v", want, session.Prefs)
	}
}

func TestSetPreferencesPatchesFields(t *testing.T) {
	session := Open("b-1", "u-1")

	if err := session.SetPreferences(4, catalog.ClassLuxury, strptr("Lekki Phase 1"), nil); err != nil {
		t.Fatalf("set preferences: %v", err)
	}
	if session.Prefs.Passengers != 4 || session.Prefs.RideClass != catalog.ClassLuxury {
		t.Fatalf("unexpected preferences: %+v", session.Prefs)
	}
	if session.Prefs.Destination != "Lekki Phase 1" {
		t.Fatalf("expected destination set, got %q", session.Prefs.Destination)
	}

	// patching only pickup leaves everything else untouched
	if err := session.SetPreferences(0, "", nil, strptr("Victoria Island")); err != nil {
		t.Fatalf("patch pickup: %v", err)
	}
	if session.Prefs.Passengers != 4 || session.Prefs.Destination != "Lekki Phase 1" {
		t.Fatalf("patch clobbered other fields: %+v", session.Prefs)
	}
	if session.Prefs.Pickup != "Victoria Island" {
		t.Fatalf("expected pickup set, got %q", session.Prefs.Pickup)
	}
}

func TestSetPreferencesValidation(t *testing.T) {
	session := Open("b-1", "u-1")

	if err := session.SetPreferences(7, "", nil, nil); !errors.Is(err, ErrInvalidPassengerCount) {
		t.Fatalf("expected ErrInvalidPassengerCount, got %v", err)
	}
	if err := session.SetPreferences(-1, "", nil, nil); !errors.Is(err, ErrInvalidPassengerCount) {
		t.Fatalf("expected ErrInvalidPassengerCount, got %v", err)
	}
	if err := session.SetPreferences(0, catalog.RideClass("premium"), nil, nil); !errors.Is(err, catalog.ErrInvalidRideClass) {
		t.Fatalf("expected ErrInvalidRideClass, got %v", err)
	}
}

func TestSelectRideOverwrites(t *testing.T) {
	session := Open("b-1", "u-1")
	options := catalog.Options()

	if err := session.SelectRide(options[0]); err != nil {
		t.Fatalf("select ride: %v", err)
	}
	if session.Stage != StageSelectingRide {
		t.Fatalf("expected selecting-ride stage, got %v", session.Stage)
	}

	// last write wins with no confirmation step
	if err := session.SelectRide(options[1]); err != nil {
		t.Fatalf("re-select ride: %v", err)
	}
	if session.Selected.ID != options[1].ID {
		t.Fatalf("expected %s selected, got %s", options[1].ID, session.Selected.ID)
	}
}

func TestConfirmGuards(t *testing.T) {
	options := catalog.Options()

	t.Run("no ride selected", func(t *testing.T) {
		session := Open("b-1", "u-1")
		if _, err := session.Confirm(TabMyself); !errors.Is(err, ErrNoRideSelected) {
			t.Fatalf("expected ErrNoRideSelected, got %v", err)
		}
	})

	t.Run("friend tab requires both fields", func(t *testing.T) {
		session := Open("b-1", "u-1")
		if err := session.SelectRide(options[0]); err != nil {
			t.Fatalf("select ride: %v", err)
		}

		if _, err := session.Confirm(TabFriend); !errors.Is(err, ErrFriendDetailsRequired) {
			t.Fatalf("expected ErrFriendDetailsRequired, got %v", err)
		}

		if err := session.SetFriendDetails("Bisi", ""); err != nil {
			t.Fatalf("set friend details: %v", err)
		}
		if _, err := session.Confirm(TabFriend); !errors.Is(err, ErrFriendDetailsRequired) {
			t.Fatalf("expected ErrFriendDetailsRequired with empty phone, got %v", err)
		}

		if err := session.SetFriendDetails("Bisi", "+234 800 111 2222"); err != nil {
			t.Fatalf("set friend details: %v", err)
		}
		details, err := session.Confirm(TabFriend)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if details.Friend == nil || details.Friend.Name != "Bisi" {
			t.Fatalf("expected friend details carried, got %+v", details.Friend)
		}
		if details.BookingType != TabFriend {
			t.Fatalf("expected friend booking type, got %v", details.BookingType)
		}
	})

	t.Run("invalid tab", func(t *testing.T) {
		session := Open("b-1", "u-1")
		if err := session.SelectRide(options[0]); err != nil {
			t.Fatalf("select ride: %v", err)
		}
		if _, err := session.Confirm(Tab("colleague")); !errors.Is(err, ErrInvalidTab) {
			t.Fatalf("expected ErrInvalidTab, got %v", err)
		}
	})
}

func TestConfirmProducesDetailsAndClosesSession(t *testing.T) {
	session := Open("b-1", "u-1")
	options := catalog.Options()

	if err := session.SetPreferences(2, catalog.ClassLuxury, strptr("Lekki Phase 1"), strptr("Victoria Island")); err != nil {
		t.Fatalf("set preferences: %v", err)
	}
	if err := session.SelectRide(options[2]); err != nil {
		t.Fatalf("select ride: %v", err)
	}

	details, err := session.Confirm(TabMyself)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if details.BookingID != "b-1" || details.Passengers != 2 || details.RideClass != catalog.ClassLuxury {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.Selected.ID != "luxury-sedan" {
		t.Fatalf("expected luxury-sedan, got %s", details.Selected.ID)
	}
	if details.Friend != nil {
		t.Fatalf("myself tab must not carry friend details")
	}
	if session.Stage != StageHandedOff {
		t.Fatalf("expected handed-off stage, got %v", session.Stage)
	}

	// the session is closed for any further mutation
	if _, err := session.Confirm(TabMyself); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on re-confirm, got %v", err)
	}
	if err := session.SelectRide(options[0]); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on select, got %v", err)
	}
}

func TestPrefillReopensAtPreferences(t *testing.T) {
	session := Open("b-1", "u-1")
	options := catalog.Options()

	if err := session.SelectRide(options[0]); err != nil {
		t.Fatalf("select ride: %v", err)
	}

	if err := session.Prefill("Victoria Island, Lagos", "Lekki Phase 1, Lagos", catalog.ClassBasic); err != nil {
		t.Fatalf("prefill: %v", err)
	}
	if session.Stage != StageSelectingPreferences {
		t.Fatalf("expected preferences stage after prefill, got %v", session.Stage)
	}
	if session.Selected != nil {
		t.Fatalf("prefill must discard the prior selection")
	}
	if !session.Prefilled {
		t.Fatalf("expected prefilled flag raised")
	}
	if session.Prefs.Pickup != "Victoria Island, Lagos" || session.Prefs.Destination != "Lekki Phase 1, Lagos" {
		t.Fatalf("unexpected prefilled preferences: %+v", session.Prefs)
	}
}

func TestBreakdown(t *testing.T) {
	price := Breakdown(2500)
	if price.ServiceFee != 200 {
		t.Fatalf("expected flat 200 service fee, got %d", price.ServiceFee)
	}
	if price.Tax != 125 {
		t.Fatalf("expected 5%% tax of 125, got %d", price.Tax)
	}
	if price.Total != 2825 {
		t.Fatalf("expected total 2825, got %d", price.Total)
	}
}

func TestFilteredOptionsFollowsPreferences(t *testing.T) {
	session := Open("b-1", "u-1")
	if err := session.SetPreferences(5, catalog.ClassBasic, nil, nil); err != nil {
		t.Fatalf("set preferences: %v", err)
	}

	got := session.FilteredOptions(catalog.Options())
	if len(got) != 1 || got[0].ID != "basic-suv" {
		t.Fatalf("expected only basic-suv for 5 passengers, got %+v", got)
	}
}
