package postgres

import (
	"context"
	"errors"

	"zorp/internal/domain/catalog"
	"zorp/internal/domain/trip"
	"zorp/internal/ports"

	"github.com/jackc/pgx/v5"
)

// RideHistoryRepo persists completed ride records using pgx and plain SQL.
type RideHistoryRepo struct{}

// NewRideHistoryRepo constructs a new RideHistoryRepo.
func NewRideHistoryRepo() ports.RideHistoryRepository {
	return &RideHistoryRepo{}
}

var ErrNoHistoryRecord = errors.New("ride history record not found")

// Append stores one completed ride for a rider.
func (repo *RideHistoryRepo) Append(ctx context.Context, riderID string, rec *trip.HistoryRecord) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ride_history (
			id, rider_id, ride_date, ride_time,
			pickup, destination,
			driver_name, driver_phone, driver_rating, driver_avatar,
			vehicle, ride_class, price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`,
		rec.ID, riderID, rec.Date, rec.Time,
		rec.Pickup, rec.Destination,
		rec.Driver.Name, rec.Driver.Phone, rec.Driver.Rating, rec.Driver.Avatar,
		rec.Vehicle, rec.RideClass.String(), rec.Price,
	)
	return err
}

// GetForRider returns one record, scoped to the rider so one user cannot
// prefill from another's history.
func (repo *RideHistoryRepo) GetForRider(ctx context.Context, riderID, recordID string) (*trip.HistoryRecord, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		SELECT id, ride_date, ride_time, pickup, destination,
		       driver_name, driver_phone, driver_rating, driver_avatar,
		       vehicle, ride_class, price
		FROM ride_history
		WHERE id = $1 AND rider_id = $2
	`, recordID, riderID)

	rec, err := scanHistoryRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoHistoryRecord
		}
		return nil, err
	}

	return rec, nil
}

// ListForRider returns the rider's past rides, most recent first.
func (repo *RideHistoryRepo) ListForRider(ctx context.Context, riderID string, limit int) ([]*trip.HistoryRecord, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	rows, err := tx.Query(ctx, `
		SELECT id, ride_date, ride_time, pickup, destination,
		       driver_name, driver_phone, driver_rating, driver_avatar,
		       vehicle, ride_class, price
		FROM ride_history
		WHERE rider_id = $1
		ORDER BY ride_date DESC, ride_time DESC
		LIMIT $2
	`, riderID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*trip.HistoryRecord
	for rows.Next() {
		rec, err := scanHistoryRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func scanHistoryRecord(row pgx.Row) (*trip.HistoryRecord, error) {
	var (
		rec       trip.HistoryRecord
		classText string
	)

	err := row.Scan(
		&rec.ID, &rec.Date, &rec.Time, &rec.Pickup, &rec.Destination,
		&rec.Driver.Name, &rec.Driver.Phone, &rec.Driver.Rating, &rec.Driver.Avatar,
		&rec.Vehicle, &classText, &rec.Price,
	)
	if err != nil {
		return nil, err
	}

	rec.RideClass = catalog.RideClass(classText)

	return &rec, nil
}
