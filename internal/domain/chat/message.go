package chat

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sender identifies which side of the conversation wrote a message.
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderDriver   Sender = "driver"
)

// ScriptedReply is the canned driver response appended after every
// customer message.
const ScriptedReply = "Thanks for the message! I'll respond shortly."

// Message is one entry in a trip's message log. Messages are append-only
// and never deleted; the log is capped only by process lifetime.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
}

// Log is an ordered, append-only message list for a single trip.
// Appends are serialized so concurrent sends keep call order.
type Log struct {
	mu       sync.Mutex
	messages []Message
	seq      int
}

// NewLog returns a log seeded with the scripted conversation history the
// chat screen opens with.
func NewLog(now time.Time) *Log {
	log := &Log{}
	seed := []struct {
		text   string
		sender Sender
		age    time.Duration
	}{
		{"Hello! I'm your driver. I'm on my way to pick you up. ETA: 5 minutes.", SenderDriver, 10 * time.Minute},
		{"Hi! Thanks for the update. I'll be waiting at the pickup location.", SenderCustomer, 8 * time.Minute},
		{"I've arrived at the pickup location. I'm in a white Toyota Camry.", SenderDriver, 2 * time.Minute},
		{"Perfect! I can see you. I'm coming out now.", SenderCustomer, 1 * time.Minute},
	}
	for _, s := range seed {
		log.append(s.text, s.sender, now.Add(-s.age))
	}
	return log
}

// Append adds a message and returns the stored record.
func (log *Log) Append(text string, sender Sender, at time.Time) (Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, false
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.append(text, sender, at), true
}

// Messages returns a snapshot of the log in append order.
func (log *Log) Messages() []Message {
	log.mu.Lock()
	defer log.mu.Unlock()
	out := make([]Message, len(log.messages))
	copy(out, log.messages)
	return out
}

// Len reports how many messages the log holds.
func (log *Log) Len() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return len(log.messages)
}

func (log *Log) append(text string, sender Sender, at time.Time) Message {
	log.seq++
	msg := Message{
		ID:        sender.String() + "-" + strconv.Itoa(log.seq),
		Text:      text,
		Sender:    sender,
		Timestamp: at.UTC(),
		Type:      "text",
	}
	log.messages = append(log.messages, msg)
	return msg
}

// String returns the string representation of the Sender.
func (sender Sender) String() string { return string(sender) }
