package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"zorp/internal/domain/user"
	"zorp/internal/general/jwt"
	"zorp/internal/general/logger"
	"zorp/internal/ports"
)

// MockName is the display name assigned on login. Authentication here is
// deliberately fake: any email and password pair is accepted.
const MockName = "John Doe"

var (
	ErrEmailRequired = errors.New("email is required")
	ErrNameRequired  = errors.New("name is required")
)

// Service implements ports.IdentityService on top of a user repository.
type Service struct {
	uow    ports.UnitOfWork
	users  ports.UserRepository
	tokens *jwt.Manager
	logger *logger.Logger

	// injected for tests
	newID func() string
}

// New wires the identity service.
func New(uow ports.UnitOfWork, users ports.UserRepository, tokens *jwt.Manager, logger *logger.Logger) *Service {
	return &Service{
		uow:    uow,
		users:  users,
		tokens: tokens,
		logger: logger,
		newID:  newUserID,
	}
}

var _ ports.IdentityService = (*Service)(nil)

// Login accepts any credentials and returns a customer profile named
// after MockName. A returning email reuses its stored row; persistence
// failures degrade to an ephemeral profile rather than blocking login.
func (service *Service) Login(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return ports.AuthResult{}, ErrEmailRequired
	}

	u, err := user.NewUser(service.newID(), email, MockName, user.RoleCustomer)
	if err != nil {
		return ports.AuthResult{}, err
	}

	err = service.uow.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := service.users.GetByEmail(ctx, email)
		if err == nil {
			u = existing
			return nil
		}
		if !errors.Is(err, user.ErrNoUser) {
			return err
		}
		return service.users.SaveUser(ctx, u)
	})
	if err != nil {
		// fail soft: the session continues on the in-memory profile
		service.logger.Error(ctx, "login_persist_failed", "Failed to persist user on login", err,
			map[string]any{"email": email})
	}

	return service.issue(ctx, u)
}

// Signup registers a new user with the provided profile details.
func (service *Service) Signup(ctx context.Context, in ports.SignupInput) (ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return ports.AuthResult{}, ErrEmailRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ports.AuthResult{}, ErrNameRequired
	}

	u, err := user.NewUser(service.newID(), email, name, user.RoleCustomer)
	if err != nil {
		return ports.AuthResult{}, err
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		u.SetPhone(phone)
	}

	err = service.uow.WithinTx(ctx, func(ctx context.Context) error {
		return service.users.SaveUser(ctx, u)
	})
	if err != nil {
		service.logger.Error(ctx, "signup_persist_failed", "Failed to persist user on signup", err,
			map[string]any{"email": email})
	}

	return service.issue(ctx, u)
}

// Logout discards the stored profile. Missing rows are not an error;
// logging out twice is a no-op.
func (service *Service) Logout(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return user.ErrNoUser
	}

	return service.uow.WithinTx(ctx, func(ctx context.Context) error {
		return service.users.DeleteUser(ctx, userID)
	})
}

// SetRole switches the user's active role and reissues the token so the
// new role is reflected in subsequent requests.
func (service *Service) SetRole(ctx context.Context, userID, role string) (ports.AuthResult, error) {
	parsed, err := user.ParseRole(role)
	if err != nil {
		return ports.AuthResult{}, err
	}

	var u *user.User
	err = service.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := service.users.UpdateRole(ctx, userID, parsed); err != nil {
			return err
		}
		u, err = service.users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return ports.AuthResult{}, err
	}

	return service.issue(ctx, u)
}

// Current returns the stored profile for a user id.
func (service *Service) Current(ctx context.Context, userID string) (ports.ProfileResult, error) {
	var u *user.User
	err := service.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		u, err = service.users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return ports.ProfileResult{}, err
	}

	return ports.ProfileResult{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role.String(),
		Phone:  u.Phone,
	}, nil
}

func (service *Service) issue(ctx context.Context, u *user.User) (ports.AuthResult, error) {
	token, _, err := service.tokens.IssueUserToken(u.ID, u.Role)
	if err != nil {
		return ports.AuthResult{}, err
	}

	service.logger.Info(ctx, "token_issued", "Issued access token",
		map[string]any{"user_id": u.ID, "role": u.Role.String()})

	return ports.AuthResult{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role.String(),
		Token:  token,
	}, nil
}

// newUserID generates a random 24-char hex user id.
func newUserID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return "usr_" + hex.EncodeToString(b[:])
}
