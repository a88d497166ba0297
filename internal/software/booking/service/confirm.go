package service

import (
	"context"
	"encoding/json"
	"time"

	"zorp/internal/domain/booking"
	"zorp/internal/general/contracts"
	"zorp/internal/ports"
	"zorp/internal/software/checkout"
)

// ConfirmBooking runs the terminal transition on the session, stores the
// resulting details behind a claim-once token, and announces the booking
// on the booking topic.
func (service *Service) ConfirmBooking(ctx context.Context, userID string, in ports.ConfirmBookingInput) (ports.ConfirmBookingResult, error) {
	tab, err := booking.ParseTab(in.Tab)
	if err != nil {
		return ports.ConfirmBookingResult{}, err
	}

	service.mu.Lock()
	session, err := service.sessionFor(userID, in.SessionID)
	if err != nil {
		service.mu.Unlock()
		return ports.ConfirmBookingResult{}, err
	}

	details, err := session.Confirm(tab)
	if err != nil {
		service.mu.Unlock()
		return ports.ConfirmBookingResult{}, err
	}

	// the session is closed now; drop it and keep only the details
	delete(service.sessions, session.ID)
	delete(service.byOwner, userID)
	service.sweepConfirmedLocked()
	service.confirmed[details.BookingID] = confirmedBooking{
		details:   details,
		expiresAt: service.now().Add(handoffTTL),
	}
	token := service.handoff.Put(ports.PreviewResult{Details: details, Price: details.Price})
	service.mu.Unlock()

	ctx = service.logger.WithBookingID(ctx, details.BookingID)
	service.logger.Info(ctx, "booking_confirmed", "Booking confirmed and handed off",
		map[string]any{"user_id": userID, "booking_type": string(details.BookingType), "total": details.Price.Total})

	service.publishConfirmed(ctx, userID, details)

	return ports.ConfirmBookingResult{
		BookingID:    details.BookingID,
		HandoffToken: token,
		Details:      details,
		Price:        details.Price,
	}, nil
}

// ClaimHandoff consumes a hand-off token. A miss tells the handler to
// redirect back to the map.
func (service *Service) ClaimHandoff(ctx context.Context, token string) (ports.PreviewResult, bool) {
	preview, ok := service.handoff.Claim(token)
	if !ok {
		service.logger.Debug(ctx, "handoff_miss", "Hand-off token unknown, claimed, or expired", nil)
		return ports.PreviewResult{}, false
	}
	return preview, true
}

// StartCheckout launches the payment simulation for a confirmed booking.
// The returned run streams progress frames until confirmation or Stop.
func (service *Service) StartCheckout(ctx context.Context, bookingID string) (*checkout.Run, error) {
	service.mu.Lock()
	entry, ok := service.confirmed[bookingID]
	if ok && service.now().After(entry.expiresAt) {
		delete(service.confirmed, bookingID)
		ok = false
	}
	service.mu.Unlock()
	if !ok {
		return nil, ErrUnknownBooking
	}

	run := service.checkout.Start(ctx, bookingID, entry.details.Price.Total)

	// the details are spent once the payment settles; an abandoned run
	// keeps them claimable for a retry until the deadline passes
	go func() {
		<-run.Done()
		if !run.Completed() {
			return
		}
		service.mu.Lock()
		delete(service.confirmed, bookingID)
		service.mu.Unlock()
	}()

	return run, nil
}

// publishConfirmed emits booking.confirmed so the trip service can
// materialize an ongoing trip.
func (service *Service) publishConfirmed(ctx context.Context, userID string, details *booking.Details) {
	if service.pub == nil {
		return
	}

	msg := contracts.BookingConfirmedMessage{
		BookingID:     details.BookingID,
		RiderID:       userID,
		Passengers:    details.Passengers,
		RideType:      details.RideClass.String(),
		Pickup:        details.Pickup,
		Destination:   details.Destination,
		RideOptionID:  details.Selected.ID,
		RideName:      details.Selected.Name,
		Price:         details.Price.RidePrice,
		Total:         details.Price.Total,
		BookingType:   string(details.BookingType),
		ConfirmedAt:   details.ConfirmedAt,
		CorrelationID: details.BookingID,
	}
	if details.Friend != nil {
		msg.FriendName = details.Friend.Name
		msg.FriendPhone = details.Friend.Phone
	}

	body, err := json.Marshal(msg)
	if err != nil {
		service.logger.Error(ctx, "booking_confirmed_marshal_failed", "Failed to marshal booking confirmed message", err, nil)
		return
	}

	routingKey := contracts.RouteBookingConfirmedPrefix + details.BookingID
	if err := service.pub.Publish(contracts.ExchangeBookingTopic, routingKey, body); err != nil {
		service.logger.Error(ctx, "booking_confirmed_publish_failed", "Failed to publish booking confirmed message", err, nil)
		return
	}

	service.logger.Info(ctx, "booking_confirmed_published", "Published booking confirmed message",
		map[string]any{"routing_key": routingKey, "confirmed_at": details.ConfirmedAt.Format(time.RFC3339)})
}
