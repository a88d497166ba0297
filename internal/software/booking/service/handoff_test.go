package service

import (
	"testing"
	"time"

	"zorp/internal/domain/booking"
	"zorp/internal/ports"
)

func TestHandoffClaimOnce(t *testing.T) {
	store := NewHandoffStore()

	preview := ports.PreviewResult{
		Details: &booking.Details{BookingID: "bk_1"},
		Price:   booking.Breakdown(1200),
	}
	token := store.Put(preview)

	got, ok := store.Claim(token)
	if !ok {
		t.Fatal("first claim missed")
	}
	if got.Details.BookingID != "bk_1" {
		t.Fatalf("claimed booking id = %q", got.Details.BookingID)
	}

	if _, ok := store.Claim(token); ok {
		t.Fatal("second claim should miss")
	}
}

func TestHandoffUnknownTokenMisses(t *testing.T) {
	store := NewHandoffStore()

	if _, ok := store.Claim("deadbeef"); ok {
		t.Fatal("unknown token should miss")
	}
}

func TestHandoffExpires(t *testing.T) {
	store := NewHandoffStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	token := store.Put(ports.PreviewResult{Details: &booking.Details{BookingID: "bk_2"}})

	current = current.Add(handoffTTL + time.Second)
	if _, ok := store.Claim(token); ok {
		t.Fatal("expired token should miss")
	}
}

func TestHandoffPutReapsExpiredEntries(t *testing.T) {
	store := NewHandoffStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Put(ports.PreviewResult{Details: &booking.Details{BookingID: "bk_old"}})

	current = current.Add(handoffTTL + time.Second)
	fresh := store.Put(ports.PreviewResult{Details: &booking.Details{BookingID: "bk_new"}})

	if len(store.entries) != 1 {
		t.Fatalf("store holds %d entries, want only the fresh one", len(store.entries))
	}
	if _, ok := store.entries[fresh]; !ok {
		t.Fatal("fresh token missing after sweep")
	}
}

func TestHandoffTokensAreUnique(t *testing.T) {
	store := NewHandoffStore()

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		token := store.Put(ports.PreviewResult{})
		if seen[token] {
			t.Fatalf("token %q repeated", token)
		}
		seen[token] = true
	}
}
