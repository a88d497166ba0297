package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// User is the domain entity corresponding to the `users` table.
// It is the single record the session store holds for a signed-in account.
type User struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string
	Name      string
	Role      Role
	Phone     string // optional
}

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrNoUser       = errors.New("no user in session")
)

// NewUser constructs a new User entity. Caller provides ID (UUID as string).
func NewUser(id, email, name string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        strings.TrimSpace(id),
		CreatedAt: now,
		UpdatedAt: now,
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Role:      role,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks invariants of the User entity.
func (user *User) Validate() error {
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return ErrInvalidEmail
	}
	if user.Name == "" {
		return ErrEmptyName
	}
	if !user.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// SetRole changes the user role (e.g., customer -> driver during role
// selection). Updates UpdatedAt timestamp.
func (user *User) SetRole(role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	user.Role = role
	user.touch()
	return nil
}

// SetPhone stores the optional phone number.
func (user *User) SetPhone(phone string) {
	user.Phone = strings.TrimSpace(phone)
	user.touch()
}

// touch sets UpdatedAt to now (UTC).
func (user *User) touch() {
	user.UpdatedAt = time.Now().UTC()
}
