package service

import (
	"context"
	"errors"

	"zorp/internal/domain/trip"
	"zorp/internal/general/postgres"
	"zorp/internal/ports"
)

// RideHistory lists the rider's past rides, most recent first. A rider
// with no history yet gets the starter records seeded first, so the
// history drawer is never empty on a fresh account.
func (service *Service) RideHistory(ctx context.Context, userID string) ([]ports.HistoryView, error) {
	var records []*trip.HistoryRecord
	err := service.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		records, err = service.history.ListForRider(ctx, userID, 50)
		if err != nil {
			return err
		}
		if len(records) > 0 {
			return nil
		}

		for _, rec := range starterHistory(userID) {
			if err := service.history.Append(ctx, userID, rec); err != nil {
				return err
			}
		}
		records, err = service.history.ListForRider(ctx, userID, 50)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.HistoryView, 0, len(records))
	for _, rec := range records {
		out = append(out, ports.HistoryView{
			ID:          rec.ID,
			Date:        rec.Date,
			Time:        rec.Time,
			Pickup:      rec.Pickup,
			Destination: rec.Destination,
			Driver:      rec.Driver,
			Vehicle:     rec.Vehicle,
			RideClass:   rec.RideClass.String(),
			Price:       rec.Price,
		})
	}
	return out, nil
}

// historyRecord loads one of the rider's past rides for prefill.
func (service *Service) historyRecord(ctx context.Context, userID, recordID string) (*trip.HistoryRecord, error) {
	var rec *trip.HistoryRecord
	err := service.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rec, err = service.history.GetForRider(ctx, userID, recordID)
		return err
	})
	if err != nil {
		if errors.Is(err, postgres.ErrNoHistoryRecord) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return rec, nil
}
