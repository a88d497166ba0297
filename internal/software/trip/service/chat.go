package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"zorp/internal/domain/chat"
	"zorp/internal/general/logger"
)

var ErrEmptyMessage = errors.New("message text is empty")

// ChatRooms holds one message log per trip plus the scripted-reply
// timers. Rooms are created lazily on first touch and live until
// CloseRoom or process exit; chat history is not persisted.
type ChatRooms struct {
	logger     *logger.Logger
	replyDelay time.Duration

	mu    sync.Mutex
	rooms map[string]*chatRoom

	// injected for tests
	now func() time.Time
}

type chatRoom struct {
	log         *chat.Log
	subscribers map[chan chat.Message]struct{}
	timers      map[*time.Timer]struct{}
	closed      bool
}

// NewChatRooms wires the chat room registry.
func NewChatRooms(logger *logger.Logger, replyDelay time.Duration) *ChatRooms {
	return &ChatRooms{
		logger:     logger,
		replyDelay: replyDelay,
		rooms:      make(map[string]*chatRoom),
		now:        time.Now,
	}
}

// room returns the trip's room, creating and seeding it on first touch.
// Callers must hold rooms.mu.
func (rooms *ChatRooms) room(tripID string) *chatRoom {
	room, ok := rooms.rooms[tripID]
	if !ok {
		room = &chatRoom{
			log:         chat.NewLog(rooms.now()),
			subscribers: make(map[chan chat.Message]struct{}),
			timers:      make(map[*time.Timer]struct{}),
		}
		rooms.rooms[tripID] = room
	}
	return room
}

// History returns the trip's messages in order, seeding the room with
// the scripted opening conversation if it is new.
func (rooms *ChatRooms) History(tripID string) []chat.Message {
	rooms.mu.Lock()
	defer rooms.mu.Unlock()
	return rooms.room(tripID).log.Messages()
}

// Subscribe registers a listener for new messages on the trip and
// returns the history snapshot taken at subscription time. The returned
// cancel function must be called when the listener goes away.
func (rooms *ChatRooms) Subscribe(tripID string) ([]chat.Message, <-chan chat.Message, func()) {
	rooms.mu.Lock()
	defer rooms.mu.Unlock()

	room := rooms.room(tripID)
	ch := make(chan chat.Message, 16)
	room.subscribers[ch] = struct{}{}

	cancel := func() {
		rooms.mu.Lock()
		defer rooms.mu.Unlock()
		if _, ok := room.subscribers[ch]; ok {
			delete(room.subscribers, ch)
			close(ch)
		}
	}

	return room.log.Messages(), ch, cancel
}

// Send appends a customer message and schedules exactly one scripted
// driver reply after the configured delay. The reply is dropped if the
// room closes before the delay elapses.
func (rooms *ChatRooms) Send(ctx context.Context, tripID, text string) (chat.Message, error) {
	rooms.mu.Lock()
	room := rooms.room(tripID)
	if room.closed {
		rooms.mu.Unlock()
		return chat.Message{}, ErrTripNotFound
	}

	msg, ok := room.log.Append(text, chat.SenderCustomer, rooms.now())
	if !ok {
		rooms.mu.Unlock()
		return chat.Message{}, ErrEmptyMessage
	}
	rooms.broadcast(room, msg)

	var timer *time.Timer
	timer = time.AfterFunc(rooms.replyDelay, func() {
		rooms.mu.Lock()
		defer rooms.mu.Unlock()
		delete(room.timers, timer)
		if room.closed {
			return
		}
		reply, _ := room.log.Append(chat.ScriptedReply, chat.SenderDriver, rooms.now())
		rooms.broadcast(room, reply)
	})
	room.timers[timer] = struct{}{}
	rooms.mu.Unlock()

	rooms.logger.Debug(ctx, "chat_message_sent", "Customer message appended",
		map[string]any{"trip_id": tripID, "message_id": msg.ID})

	return msg, nil
}

// CloseRoom tears the room down: pending replies are cancelled and
// subscribers are released. History for a closed room is gone.
func (rooms *ChatRooms) CloseRoom(tripID string) {
	rooms.mu.Lock()
	defer rooms.mu.Unlock()

	room, ok := rooms.rooms[tripID]
	if !ok {
		return
	}
	room.closed = true
	for timer := range room.timers {
		timer.Stop()
		delete(room.timers, timer)
	}
	for ch := range room.subscribers {
		delete(room.subscribers, ch)
		close(ch)
	}
	delete(rooms.rooms, tripID)
}

// broadcast fans a message out to the room's listeners. Slow listeners
// lose messages rather than blocking the log.
// Callers must hold rooms.mu.
func (rooms *ChatRooms) broadcast(room *chatRoom, msg chat.Message) {
	for ch := range room.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}
