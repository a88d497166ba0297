package postgres

import (
	"context"
	"errors"

	"zorp/internal/domain/user"
	"zorp/internal/ports"

	"github.com/jackc/pgx/v5"
)

// UserRepo persists users using pgx and plain SQL.
type UserRepo struct{}

// NewUserRepo constructs a new UserRepo.
func NewUserRepo() ports.UserRepository {
	return &UserRepo{}
}

// SaveUser inserts a user row, or refreshes name/phone when the id already exists.
func (repo *UserRepo) SaveUser(ctx context.Context, u *user.User) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	// if caller didn't pre-assign an ID, insert and get it back
	if u.ID == "" {
		if err := tx.QueryRow(ctx, `
			INSERT INTO users (email, name, role, phone)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`,
			u.Email,
			u.Name,
			u.Role.String(),
			u.Phone,
		).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		return nil
	}

	// caller provided an ID: upsert so repeated logins refresh the same row
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, email, name, role, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    phone = EXCLUDED.phone,
		    updated_at = now()
		RETURNING created_at, updated_at
	`,
		u.ID,
		u.Email,
		u.Name,
		u.Role.String(),
		u.Phone,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID returns one user by id.
func (repo *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out      user.User
		roleText string
	)

	err = tx.QueryRow(ctx, `
		SELECT id, created_at, updated_at, email, name, role, phone
		FROM users
		WHERE id = $1
	`, id).Scan(
		&out.ID, &out.CreatedAt, &out.UpdatedAt,
		&out.Email, &out.Name, &roleText, &out.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNoUser
		}
		return nil, err
	}

	out.Role = user.Role(roleText)

	return &out, nil
}

// GetByEmail returns one user by email.
func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out      user.User
		roleText string
	)

	err = tx.QueryRow(ctx, `
		SELECT id, created_at, updated_at, email, name, role, phone
		FROM users
		WHERE email = $1
	`, email).Scan(
		&out.ID, &out.CreatedAt, &out.UpdatedAt,
		&out.Email, &out.Name, &roleText, &out.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNoUser
		}
		return nil, err
	}

	out.Role = user.Role(roleText)

	return &out, nil
}

// UpdateRole changes the stored role for a user.
func (repo *UserRepo) UpdateRole(ctx context.Context, id string, role user.Role) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET role = $2, updated_at = now()
		WHERE id = $1
	`, id, role.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNoUser
	}

	return nil
}

// DeleteUser removes the user row; logging out discards the stored profile.
func (repo *UserRepo) DeleteUser(ctx context.Context, id string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
