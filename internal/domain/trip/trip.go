package trip

import (
	"errors"
	"strings"
	"time"

	"zorp/internal/domain/catalog"
)

// Driver is the contact card shown next to an ongoing trip.
type Driver struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Rating float64 `json:"rating"`
	Avatar string  `json:"avatar"`
}

// Trip is an ongoing ride on the rides screen. Created when a confirmed
// booking is materialized, updated as payment events arrive.
type Trip struct {
	ID          string
	RiderID     string
	Driver      Driver
	Vehicle     string
	Pickup      string
	Destination string
	Status      Status
	ETA         string
	Price       int
	StartedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Payment lifecycle. PaymentCompleted unlocks the chat affordance;
	// PaymentReleased is the rider's final confirmation to the driver.
	PaymentCompleted bool
	PaymentReleased  bool
	ReleasedAt       *time.Time
}

var (
	ErrRiderRequired   = errors.New("rider id is required")
	ErrTripIDRequired  = errors.New("trip id is required")
	ErrAlreadyReleased = errors.New("payment already released")
	ErrNotPaid         = errors.New("payment not completed yet")
)

// NewTrip creates an ongoing trip in EN_ROUTE state.
func NewTrip(id, riderID string, driver Driver, vehicle, pickup, destination, eta string, price int) (*Trip, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, ErrTripIDRequired
	}
	if riderID = strings.TrimSpace(riderID); riderID == "" {
		return nil, ErrRiderRequired
	}

	now := time.Now().UTC()
	return &Trip{
		ID:          id,
		RiderID:     riderID,
		Driver:      driver,
		Vehicle:     vehicle,
		Pickup:      strings.TrimSpace(pickup),
		Destination: strings.TrimSpace(destination),
		Status:      StatusEnRoute,
		ETA:         eta,
		Price:       price,
		StartedAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetStatus applies a new status.
func (trip *Trip) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	trip.Status = status
	trip.touch()
	return nil
}

// MarkPaid records that checkout completed for this trip, unlocking chat.
func (trip *Trip) MarkPaid() {
	trip.PaymentCompleted = true
	trip.touch()
}

// ReleasePayment is the rider's confirmation that the held payment may go
// to the driver. Requires a completed payment and is one-shot.
func (trip *Trip) ReleasePayment() error {
	if !trip.PaymentCompleted {
		return ErrNotPaid
	}
	if trip.PaymentReleased {
		return ErrAlreadyReleased
	}
	now := time.Now().UTC()
	trip.PaymentReleased = true
	trip.ReleasedAt = &now
	trip.touch()
	return nil
}

func (trip *Trip) touch() {
	trip.UpdatedAt = time.Now().UTC()
}

// HistoryRecord is a completed past ride, the seed for the booking
// drawer's "reuse route" prefill.
type HistoryRecord struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Pickup      string            `json:"pickup"`
	Destination string            `json:"destination"`
	Driver      Driver            `json:"driver"`
	Vehicle     string            `json:"vehicle"`
	RideClass   catalog.RideClass `json:"ride_type"`
	Price       int               `json:"price"`
}
