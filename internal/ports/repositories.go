package ports

import (
	"context"
	"time"

	"zorp/internal/domain/trip"
	"zorp/internal/domain/user"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the methods for managing user data.
type UserRepository interface {
	SaveUser(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateRole(ctx context.Context, id string, role user.Role) error
	DeleteUser(ctx context.Context, id string) error
}

// TripRepository defines the methods for managing trip data.
type TripRepository interface {
	CreateTrip(ctx context.Context, t *trip.Trip) error
	GetByID(ctx context.Context, id string) (*trip.Trip, error)
	ListOngoingForRider(ctx context.Context, riderID string) ([]*trip.Trip, error)
	UpdateStatus(ctx context.Context, id string, status trip.Status, ts time.Time) error
	MarkPaid(ctx context.Context, id, walletID string, ts time.Time) error
	ReleasePayment(ctx context.Context, id string, ts time.Time) error
}

// RideHistoryRepository defines the methods for managing completed ride records.
type RideHistoryRepository interface {
	Append(ctx context.Context, riderID string, rec *trip.HistoryRecord) error
	GetForRider(ctx context.Context, riderID, recordID string) (*trip.HistoryRecord, error)
	ListForRider(ctx context.Context, riderID string, limit int) ([]*trip.HistoryRecord, error)
}
