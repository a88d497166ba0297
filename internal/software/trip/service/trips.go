package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"zorp/internal/domain/trip"
	"zorp/internal/general/contracts"
	"zorp/internal/general/postgres"
	"zorp/internal/ports"
)

// OngoingTrips lists the rider's active trips. A rider with no trips yet
// gets the demo pair seeded first so the rides screen has content on a
// fresh account.
func (service *Service) OngoingTrips(ctx context.Context, riderID string) ([]ports.TripView, error) {
	var trips []*trip.Trip
	err := service.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		trips, err = service.trips.ListOngoingForRider(ctx, riderID)
		if err != nil {
			return err
		}
		if len(trips) > 0 {
			return nil
		}

		for _, t := range starterTrips(riderID) {
			if err := service.trips.CreateTrip(ctx, t); err != nil {
				return err
			}
		}
		trips, err = service.trips.ListOngoingForRider(ctx, riderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.TripView, 0, len(trips))
	for _, t := range trips {
		out = append(out, ports.TripView{
			TripID:           t.ID,
			Driver:           t.Driver,
			Vehicle:          t.Vehicle,
			Pickup:           t.Pickup,
			Destination:      t.Destination,
			Status:           t.Status.String(),
			ETA:              t.ETA,
			Price:            t.Price,
			PaymentCompleted: t.PaymentCompleted,
			PaymentReleased:  t.PaymentReleased,
		})
	}
	return out, nil
}

// ReleasePayment confirms the held payment may go to the driver. The
// transition is one-shot; repeats and unpaid trips are rejected. A
// released trip is over, so it also moves to completed and drops off
// the ongoing list.
func (service *Service) ReleasePayment(ctx context.Context, riderID, tripID string) (ports.ReleasePaymentResult, error) {
	var released *trip.Trip
	err := service.uow.WithinTx(ctx, func(ctx context.Context) error {
		t, err := service.trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		if t.RiderID != riderID {
			return postgres.ErrNoTrip
		}

		now := time.Now().UTC()
		if err := service.trips.ReleasePayment(ctx, tripID, now); err != nil {
			return err
		}
		if err := service.trips.UpdateStatus(ctx, tripID, trip.StatusCompleted, now); err != nil {
			return err
		}

		t.PaymentReleased = true
		t.ReleasedAt = &now
		t.Status = trip.StatusCompleted
		released = t
		return nil
	})
	if err != nil {
		if errors.Is(err, postgres.ErrNoTrip) {
			return ports.ReleasePaymentResult{}, ErrTripNotFound
		}
		return ports.ReleasePaymentResult{}, err
	}

	service.publishReleased(ctx, released)

	return ports.ReleasePaymentResult{
		TripID:     released.ID,
		Released:   true,
		ReleasedAt: *released.ReleasedAt,
		Message:    "Payment released to " + released.Driver.Name,
	}, nil
}

// publishReleased emits payment.released for downstream settlement.
func (service *Service) publishReleased(ctx context.Context, t *trip.Trip) {
	if service.pub == nil {
		return
	}

	msg := contracts.PaymentReleasedMessage{
		TripID:        t.ID,
		Amount:        t.Price,
		DriverName:    t.Driver.Name,
		ReleasedAt:    *t.ReleasedAt,
		CorrelationID: t.ID,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		service.logger.Error(ctx, "payment_released_marshal_failed", "Failed to marshal payment released message", err, nil)
		return
	}

	routingKey := contracts.RoutePaymentReleasedPrefix + t.ID
	if err := service.pub.Publish(contracts.ExchangePaymentTopic, routingKey, body); err != nil {
		service.logger.Error(ctx, "payment_released_publish_failed", "Failed to publish payment released message", err,
			map[string]any{"trip_id": t.ID})
		return
	}

	service.logger.Info(ctx, "payment_released_published", "Published payment released message",
		map[string]any{"trip_id": t.ID, "driver": t.Driver.Name})
}

// starterTrips returns the demo ongoing rides a fresh account starts
// with. They are already paid so the chat affordance works immediately.
func starterTrips(riderID string) []*trip.Trip {
	first, _ := trip.NewTrip(
		riderID+"-t1", riderID,
		trip.Driver{Name: "John D.", Phone: "+234 800 123 4567", Rating: 4.8, Avatar: "JD"},
		"Toyota Camry - ABC 123 XY",
		"Victoria Island, Lagos",
		"Lekki Phase 1, Lagos",
		"5 min",
		1200,
	)
	first.MarkPaid()

	second, _ := trip.NewTrip(
		riderID+"-t2", riderID,
		trip.Driver{Name: "Sarah M.", Phone: "+234 800 234 5678", Rating: 4.9, Avatar: "SM"},
		"Honda Accord - DEF 456 YZ",
		"Ikeja, Lagos",
		"Mushin, Lagos",
		"0 min",
		1800,
	)
	_ = second.SetStatus(trip.StatusArrived)
	second.MarkPaid()

	return []*trip.Trip{first, second}
}
