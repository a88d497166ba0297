package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"zorp/internal/domain/booking"
	"zorp/internal/domain/geo"
	"zorp/internal/general/logger"
	"zorp/internal/ports"
	"zorp/internal/software/checkout"
)

var (
	ErrSessionNotFound = errors.New("booking session not found")
	ErrNotSessionOwner = errors.New("booking session belongs to another user")
	ErrUnknownBooking  = errors.New("unknown booking id")
	ErrUnknownOption   = errors.New("unknown ride option")
	ErrHistoryNotFound = errors.New("ride history record not found")
)

// Service implements ports.BookingService. Drawer sessions are held in
// memory only: the flow is interactive and a dropped session simply
// restarts at the defaults, so there is nothing worth persisting.
type Service struct {
	logger   *logger.Logger
	uow      ports.UnitOfWork
	history  ports.RideHistoryRepository
	resolver *geo.Resolver
	pub      checkout.Publisher
	checkout *checkout.Processor

	mu        sync.Mutex
	sessions  map[string]*booking.Session // session id -> session
	byOwner   map[string]string           // owner id -> session id
	confirmed map[string]confirmedBooking // booking id -> details awaiting checkout

	handoff *HandoffStore

	// injected for tests
	newID func() string
	now   func() time.Time
}

// confirmedBooking parks a booking's details between Confirm and the end
// of its checkout run. Entries are spent when the payment settles and
// reaped past their deadline otherwise.
type confirmedBooking struct {
	details   *booking.Details
	expiresAt time.Time
}

// New wires the booking service.
func New(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	history ports.RideHistoryRepository,
	resolver *geo.Resolver,
	pub checkout.Publisher,
	processor *checkout.Processor,
) *Service {
	return &Service{
		logger:    logger,
		uow:       uow,
		history:   history,
		resolver:  resolver,
		pub:       pub,
		checkout:  processor,
		sessions:  make(map[string]*booking.Session),
		byOwner:   make(map[string]string),
		confirmed: make(map[string]confirmedBooking),
		handoff:   NewHandoffStore(),
		newID:     newBookingID,
		now:       time.Now,
	}
}

var _ ports.BookingService = (*Service)(nil)

// sweepConfirmedLocked reaps confirmed bookings whose checkout never
// finished. Callers must hold service.mu.
func (service *Service) sweepConfirmedLocked() {
	now := service.now()
	for id, entry := range service.confirmed {
		if now.After(entry.expiresAt) {
			delete(service.confirmed, id)
		}
	}
}

// sessionFor returns the caller's session or an ownership error.
// Callers must hold service.mu.
func (service *Service) sessionFor(userID, sessionID string) (*booking.Session, error) {
	session, ok := service.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.OwnerID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// newBookingID generates a random 24-char hex booking/session id.
func newBookingID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return "bk_" + hex.EncodeToString(b[:])
}
