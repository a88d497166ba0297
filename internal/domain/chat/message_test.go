package chat

import (
	"testing"
	"time"
)

func TestNewLogSeedsScriptedHistory(t *testing.T) {
	now := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	log := NewLog(now)

	msgs := log.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 seeded messages, got %d", len(msgs))
	}
	if msgs[0].Sender != SenderDriver || msgs[1].Sender != SenderCustomer {
		t.Fatalf("unexpected seed senders: %v, %v", msgs[0].Sender, msgs[1].Sender)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Before(msgs[i-1].Timestamp) {
			t.Fatalf("seed messages out of order at %d", i)
		}
	}
}

func TestAppendKeepsCallOrder(t *testing.T) {
	now := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	log := NewLog(now)

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, ok := log.Append(text, SenderCustomer, now); !ok {
			t.Fatalf("append %q rejected", text)
		}
	}

	msgs := log.Messages()
	tail := msgs[len(msgs)-3:]
	for i, text := range texts {
		if tail[i].Text != text {
			t.Fatalf("expected %q at position %d, got %q", text, i, tail[i].Text)
		}
	}
}

func TestAppendRejectsBlankText(t *testing.T) {
	log := NewLog(time.Now())
	before := log.Len()

	if _, ok := log.Append("   ", SenderCustomer, time.Now()); ok {
		t.Fatalf("blank message must be rejected")
	}
	if log.Len() != before {
		t.Fatalf("log length changed after rejected append")
	}
}

func TestMessagesReturnsSnapshot(t *testing.T) {
	now := time.Now()
	log := NewLog(now)

	snapshot := log.Messages()
	log.Append("later", SenderCustomer, now)

	if len(snapshot) == log.Len() {
		t.Fatalf("snapshot must not track later appends")
	}
}
