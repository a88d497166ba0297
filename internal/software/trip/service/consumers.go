package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"zorp/internal/domain/trip"
	"zorp/internal/general/contracts"
	"zorp/internal/general/postgres"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RunBackgroundConsumers starts the booking and payment consumers. Each
// runs until ctx is cancelled; consume errors are logged and retried.
func (service *Service) RunBackgroundConsumers(ctx context.Context) {
	if service.mq == nil {
		return
	}

	go service.consumeLoop(ctx, contracts.QueueBookingConfirmed, "trip-booking-confirmed", service.onBookingConfirmed)
	go service.consumeLoop(ctx, contracts.QueuePaymentCompleted, "trip-payment-completed", service.onPaymentCompleted)
}

func (service *Service) consumeLoop(ctx context.Context, queue, tag string, handler func(context.Context, amqp.Delivery) error) {
	for {
		err := service.mq.Consume(ctx, queue, tag, service.prefetch, handler)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			service.logger.Error(ctx, "consumer_stopped", "Consumer stopped, retrying", err,
				map[string]any{"queue": queue})
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

// onBookingConfirmed materializes an ongoing trip from a confirmed
// booking. Redeliveries are absorbed by the idempotent insert.
func (service *Service) onBookingConfirmed(ctx context.Context, d amqp.Delivery) error {
	var msg contracts.BookingConfirmedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		service.logger.Error(ctx, "booking_confirmed_decode_failed", "Failed to decode booking confirmed message", err, nil)
		return err
	}

	ctx = service.logger.WithBookingID(ctx, msg.BookingID)

	t, err := service.materializeTrip(&msg)
	if err != nil {
		service.logger.Error(ctx, "trip_materialize_failed", "Failed to build trip from booking", err, nil)
		return err
	}

	err = service.uow.WithinTx(ctx, func(ctx context.Context) error {
		return service.trips.CreateTrip(ctx, t)
	})
	if err != nil {
		service.logger.Error(ctx, "trip_create_failed", "Failed to persist materialized trip", err, nil)
		return err
	}

	service.logger.Info(ctx, "trip_materialized", "Ongoing trip created from confirmed booking",
		map[string]any{"trip_id": t.ID, "driver": t.Driver.Name})
	return nil
}

// onPaymentCompleted unlocks chat for the paid trip.
func (service *Service) onPaymentCompleted(ctx context.Context, d amqp.Delivery) error {
	var msg contracts.PaymentCompletedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		service.logger.Error(ctx, "payment_completed_decode_failed", "Failed to decode payment completed message", err, nil)
		return err
	}

	ctx = service.logger.WithBookingID(ctx, msg.BookingID)

	err := service.uow.WithinTx(ctx, func(ctx context.Context) error {
		return service.trips.MarkPaid(ctx, msg.BookingID, msg.WalletID, msg.CompletedAt)
	})
	if err != nil {
		// payment may arrive before the trip row; let redelivery retry
		if errors.Is(err, postgres.ErrNoTrip) {
			service.logger.Info(ctx, "payment_before_trip", "Payment completed for a trip not materialized yet", nil)
		} else {
			service.logger.Error(ctx, "trip_mark_paid_failed", "Failed to mark trip as paid", err, nil)
		}
		return err
	}

	service.logger.Info(ctx, "trip_marked_paid", "Trip marked paid, chat unlocked",
		map[string]any{"wallet_id": msg.WalletID})
	return nil
}

// assignedDrivers is the demo pool new trips draw from, round-robin by
// materialization order.
var assignedDrivers = []struct {
	driver  trip.Driver
	vehicle string
}{
	{trip.Driver{Name: "John D.", Phone: "+234 800 123 4567", Rating: 4.8, Avatar: "JD"}, "Toyota Camry - ABC 123 XY"},
	{trip.Driver{Name: "Sarah M.", Phone: "+234 800 234 5678", Rating: 4.9, Avatar: "SM"}, "Honda Accord - DEF 456 YZ"},
	{trip.Driver{Name: "Mike T.", Phone: "+234 800 345 6789", Rating: 4.7, Avatar: "MT"}, "Nissan Altima - GHI 789 AB"},
}

// materializeTrip builds the ongoing trip for a confirmed booking. The
// trip id equals the booking id so payment events can find it.
func (service *Service) materializeTrip(msg *contracts.BookingConfirmedMessage) (*trip.Trip, error) {
	pick := assignedDrivers[tripSeq(msg.BookingID)%len(assignedDrivers)]

	return trip.NewTrip(
		msg.BookingID,
		msg.RiderID,
		pick.driver,
		pick.vehicle,
		msg.Pickup,
		msg.Destination,
		"5 min",
		msg.Price,
	)
}

// tripSeq derives a stable index from a booking id.
func tripSeq(bookingID string) int {
	sum := 0
	for _, r := range bookingID {
		sum += int(r)
	}
	return sum
}
