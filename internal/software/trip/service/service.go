package service

import (
	"errors"
	"time"

	"zorp/internal/general/logger"
	"zorp/internal/general/rabbitmq"
	"zorp/internal/ports"
)

var ErrTripNotFound = errors.New("trip not found")

// Publisher is the messaging dependency of the trip service.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

var _ Publisher = (*rabbitmq.MQPublisher)(nil)

// Service implements ports.TripService: the ongoing rides screen, the
// payment release flow, and the consumers that materialize trips from
// booking and payment events.
type Service struct {
	logger   *logger.Logger
	uow      ports.UnitOfWork
	trips    ports.TripRepository
	pub      Publisher
	mq       *rabbitmq.Client
	rooms    *ChatRooms
	prefetch int
}

// New wires the trip service. prefetch bounds unacked deliveries per
// consumer channel.
func New(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	trips ports.TripRepository,
	pub Publisher,
	mq *rabbitmq.Client,
	replyDelay time.Duration,
	prefetch int,
) *Service {
	if prefetch <= 0 {
		prefetch = 8
	}
	return &Service{
		logger:   logger,
		uow:      uow,
		trips:    trips,
		pub:      pub,
		mq:       mq,
		rooms:    NewChatRooms(logger, replyDelay),
		prefetch: prefetch,
	}
}

var _ ports.TripService = (*Service)(nil)

// Chat exposes the trip's chat rooms to the WebSocket layer.
func (service *Service) Chat() *ChatRooms { return service.rooms }
