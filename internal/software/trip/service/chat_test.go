package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"zorp/internal/domain/chat"
	"zorp/internal/general/logger"
)

func newTestRooms(delay time.Duration) *ChatRooms {
	return NewChatRooms(logger.New("chat-test"), delay)
}

func TestHistorySeedsScriptedConversation(t *testing.T) {
	rooms := newTestRooms(time.Millisecond)

	history := rooms.History("trip-1")
	if len(history) != 4 {
		t.Fatalf("got %d seeded messages, want 4", len(history))
	}
	if history[0].Sender != chat.SenderDriver || history[3].Sender != chat.SenderCustomer {
		t.Fatalf("seed senders wrong: first=%s last=%s", history[0].Sender, history[3].Sender)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("seed timestamps out of order at %d", i)
		}
	}
}

func TestSendAppendsAndSchedulesOneReply(t *testing.T) {
	rooms := newTestRooms(5 * time.Millisecond)

	msg, err := rooms.Send(context.Background(), "trip-1", "On my way down")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.Sender != chat.SenderCustomer {
		t.Fatalf("sender = %s, want customer", msg.Sender)
	}

	deadline := time.After(time.Second)
	for {
		history := rooms.History("trip-1")
		if len(history) == 6 {
			last := history[5]
			if last.Sender != chat.SenderDriver || last.Text != chat.ScriptedReply {
				t.Fatalf("reply = %+v", last)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("reply never arrived; history len = %d", len(history))
		case <-time.After(time.Millisecond):
		}
	}

	// no second reply shows up later
	time.Sleep(20 * time.Millisecond)
	if got := len(rooms.History("trip-1")); got != 6 {
		t.Fatalf("history len = %d after settling, want 6 (exactly one reply)", got)
	}
}

func TestEachSendGetsItsOwnReply(t *testing.T) {
	rooms := newTestRooms(2 * time.Millisecond)
	ctx := context.Background()

	if _, err := rooms.Send(ctx, "trip-1", "first"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := rooms.Send(ctx, "trip-1", "second"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	deadline := time.After(time.Second)
	for len(rooms.History("trip-1")) < 8 {
		select {
		case <-deadline:
			t.Fatalf("history len = %d, want 8", len(rooms.History("trip-1")))
		case <-time.After(time.Millisecond):
		}
	}

	replies := 0
	for _, msg := range rooms.History("trip-1") {
		if msg.Text == chat.ScriptedReply {
			replies++
		}
	}
	if replies != 2 {
		t.Fatalf("got %d scripted replies, want 2", replies)
	}
}

func TestSendRejectsBlankText(t *testing.T) {
	rooms := newTestRooms(time.Millisecond)

	if _, err := rooms.Send(context.Background(), "trip-1", "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("error = %v, want ErrEmptyMessage", err)
	}
	if got := len(rooms.History("trip-1")); got != 4 {
		t.Fatalf("history len = %d, blank send must not append", got)
	}
}

func TestCloseRoomCancelsPendingReply(t *testing.T) {
	rooms := newTestRooms(20 * time.Millisecond)

	if _, err := rooms.Send(context.Background(), "trip-1", "hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	rooms.CloseRoom("trip-1")

	time.Sleep(50 * time.Millisecond)

	// the room was torn down; touching it again starts a fresh seed
	history := rooms.History("trip-1")
	if len(history) != 4 {
		t.Fatalf("history len = %d, want fresh seed of 4", len(history))
	}
	for _, msg := range history {
		if msg.Text == "hello" {
			t.Fatal("closed room leaked the old message")
		}
	}
}

func TestSubscribeReceivesBroadcasts(t *testing.T) {
	rooms := newTestRooms(2 * time.Millisecond)

	history, ch, cancel := rooms.Subscribe("trip-1")
	defer cancel()

	if len(history) != 4 {
		t.Fatalf("snapshot len = %d, want 4", len(history))
	}

	if _, err := rooms.Send(context.Background(), "trip-1", "ping"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var got []chat.Message
	deadline := time.After(time.Second)
	for len(got) < 2 {
		select {
		case msg := <-ch:
			got = append(got, msg)
		case <-deadline:
			t.Fatalf("received %d broadcasts, want customer message and reply", len(got))
		}
	}

	if got[0].Text != "ping" || got[1].Text != chat.ScriptedReply {
		t.Fatalf("broadcasts = %+v", got)
	}
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	rooms := newTestRooms(time.Millisecond)

	_, ch, cancel := rooms.Subscribe("trip-1")
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}

	// second cancel is a no-op
	cancel()
}
