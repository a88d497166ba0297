package postgres

import (
	"context"
	"errors"
	"time"

	"zorp/internal/domain/trip"
	"zorp/internal/ports"

	"github.com/jackc/pgx/v5"
)

// TripRepo persists ongoing trips using pgx and plain SQL.
type TripRepo struct{}

// NewTripRepo constructs a new TripRepo.
func NewTripRepo() ports.TripRepository {
	return &TripRepo{}
}

var ErrNoTrip = errors.New("trip not found")

const tripColumns = `
	id, rider_id,
	driver_name, driver_phone, driver_rating, driver_avatar,
	vehicle, pickup, destination, status, eta, price,
	payment_completed, payment_released, released_at,
	started_at, created_at, updated_at`

// CreateTrip inserts a new trip row.
func (repo *TripRepo) CreateTrip(ctx context.Context, t *trip.Trip) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO trips (
			id, rider_id,
			driver_name, driver_phone, driver_rating, driver_avatar,
			vehicle, pickup, destination, status, eta, price,
			payment_completed, payment_released,
			started_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING
	`,
		t.ID, t.RiderID,
		t.Driver.Name, t.Driver.Phone, t.Driver.Rating, t.Driver.Avatar,
		t.Vehicle, t.Pickup, t.Destination, t.Status.String(), t.ETA, t.Price,
		t.PaymentCompleted, t.PaymentReleased,
		t.StartedAt, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// GetByID returns one trip by id.
func (repo *TripRepo) GetByID(ctx context.Context, id string) (*trip.Trip, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `SELECT`+tripColumns+` FROM trips WHERE id = $1`, id)

	out, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoTrip
		}
		return nil, err
	}

	return out, nil
}

// ListOngoingForRider returns the rider's trips that have not completed yet,
// oldest first so the rides screen keeps a stable order.
func (repo *TripRepo) ListOngoingForRider(ctx context.Context, riderID string) ([]*trip.Trip, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT`+tripColumns+`
		FROM trips
		WHERE rider_id = $1 AND status <> $2
		ORDER BY created_at ASC
	`, riderID, trip.StatusCompleted.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*trip.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

// UpdateStatus applies a new status to an existing trip.
func (repo *TripRepo) UpdateStatus(ctx context.Context, id string, status trip.Status, ts time.Time) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE trips
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, status.String(), ts)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoTrip
	}

	return nil
}

// MarkPaid records a completed checkout for the trip.
func (repo *TripRepo) MarkPaid(ctx context.Context, id, walletID string, ts time.Time) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE trips
		SET payment_completed = TRUE, wallet_id = $2, updated_at = $3
		WHERE id = $1
	`, id, walletID, ts)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoTrip
	}

	return nil
}

// ReleasePayment marks the held payment as released to the driver.
// Requires a completed payment; the WHERE clause makes the call one-shot.
func (repo *TripRepo) ReleasePayment(ctx context.Context, id string, ts time.Time) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE trips
		SET payment_released = TRUE, released_at = $2, updated_at = $2
		WHERE id = $1 AND payment_completed = TRUE AND payment_released = FALSE
	`, id, ts)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// distinguish missing from already-released / unpaid
		var completed, released bool
		err := tx.QueryRow(ctx, `
			SELECT payment_completed, payment_released FROM trips WHERE id = $1
		`, id).Scan(&completed, &released)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoTrip
		}
		if err != nil {
			return err
		}
		if released {
			return trip.ErrAlreadyReleased
		}
		return trip.ErrNotPaid
	}

	return nil
}

// scanTrip hydrates one trip from a row using the tripColumns order.
func scanTrip(row pgx.Row) (*trip.Trip, error) {
	var (
		out        trip.Trip
		statusText string
		releasedAt *time.Time
	)

	err := row.Scan(
		&out.ID, &out.RiderID,
		&out.Driver.Name, &out.Driver.Phone, &out.Driver.Rating, &out.Driver.Avatar,
		&out.Vehicle, &out.Pickup, &out.Destination, &statusText, &out.ETA, &out.Price,
		&out.PaymentCompleted, &out.PaymentReleased, &releasedAt,
		&out.StartedAt, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	out.Status = trip.Status(statusText)
	out.ReleasedAt = releasedAt

	return &out, nil
}
