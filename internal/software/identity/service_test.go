package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"zorp/internal/domain/user"
	"zorp/internal/general/jwt"
	"zorp/internal/general/logger"
	"zorp/internal/ports"
)

// passthroughUOW runs the function without a real transaction.
type passthroughUOW struct{}

func (passthroughUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	byID map[string]*user.User
	fail error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*user.User{}}
}

func (repo *memUserRepo) SaveUser(_ context.Context, u *user.User) error {
	if repo.fail != nil {
		return repo.fail
	}
	cp := *u
	repo.byID[u.ID] = &cp
	return nil
}

func (repo *memUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	if repo.fail != nil {
		return nil, repo.fail
	}
	if u, ok := repo.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrNoUser
}

func (repo *memUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if repo.fail != nil {
		return nil, repo.fail
	}
	for _, u := range repo.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNoUser
}

func (repo *memUserRepo) UpdateRole(_ context.Context, id string, role user.Role) error {
	if repo.fail != nil {
		return repo.fail
	}
	u, ok := repo.byID[id]
	if !ok {
		return user.ErrNoUser
	}
	u.Role = role
	return nil
}

func (repo *memUserRepo) DeleteUser(_ context.Context, id string) error {
	if repo.fail != nil {
		return repo.fail
	}
	delete(repo.byID, id)
	return nil
}

var _ ports.UserRepository = (*memUserRepo)(nil)

func newTestService(repo *memUserRepo) (*Service, *jwt.Manager) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	svc := New(passthroughUOW{}, repo, mgr, logger.New("identity-test"))
	seq := 0
	svc.newID = func() string {
		seq++
		return "usr_" + string(rune('a'+seq-1))
	}
	return svc, mgr
}

func TestLoginAcceptsAnyCredentials(t *testing.T) {
	repo := newMemUserRepo()
	svc, mgr := newTestService(repo)

	res, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "Rider@Example.com",
		Password: "whatever",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if res.Name != MockName {
		t.Fatalf("name = %q, want %q", res.Name, MockName)
	}
	if res.Role != user.RoleCustomer.String() {
		t.Fatalf("role = %q, want customer", res.Role)
	}
	if res.Email != "rider@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", res.Email)
	}

	_, claims, err := mgr.ParseAndValidate(res.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != res.UserID {
		t.Fatalf("token subject = %q, want %q", claims.Subject, res.UserID)
	}
	if _, ok := repo.byID[res.UserID]; !ok {
		t.Fatal("login did not persist the user")
	}
}

func TestLoginReusesExistingUser(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	first, err := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("first Login() error = %v", err)
	}
	second, err := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("second Login() error = %v", err)
	}

	if first.UserID != second.UserID {
		t.Fatalf("same email got two ids: %q and %q", first.UserID, second.UserID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("stored %d users, want 1", len(repo.byID))
	}
}

func TestLoginSurvivesRepositoryFailure(t *testing.T) {
	repo := newMemUserRepo()
	repo.fail = errors.New("db down")
	svc, _ := newTestService(repo)

	res, err := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("Login() with broken repo error = %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token despite persistence failure")
	}
}

func TestLoginRequiresEmail(t *testing.T) {
	svc, _ := newTestService(newMemUserRepo())

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "   "}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("error = %v, want ErrEmailRequired", err)
	}
}

func TestSignupStoresProfile(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	res, err := svc.Signup(context.Background(), ports.SignupInput{
		Email: "new@example.com",
		Name:  "Ada Obi",
		Phone: "+2348000000000",
	})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	stored := repo.byID[res.UserID]
	if stored == nil {
		t.Fatal("signup did not persist the user")
	}
	if stored.Name != "Ada Obi" || stored.Phone != "+2348000000000" {
		t.Fatalf("stored profile = %+v", stored)
	}
}

func TestSignupRequiresName(t *testing.T) {
	svc, _ := newTestService(newMemUserRepo())

	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "new@example.com"})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("error = %v, want ErrNameRequired", err)
	}
}

func TestSetRoleReissuesToken(t *testing.T) {
	repo := newMemUserRepo()
	svc, mgr := newTestService(repo)

	logged, err := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	res, err := svc.SetRole(context.Background(), logged.UserID, "driver")
	if err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	if res.Role != user.RoleDriver.String() {
		t.Fatalf("role = %q, want driver", res.Role)
	}

	_, claims, err := mgr.ParseAndValidate(res.Token)
	if err != nil {
		t.Fatalf("reissued token does not validate: %v", err)
	}
	if claims.Role != user.RoleDriver {
		t.Fatalf("token role = %q, want driver", claims.Role)
	}
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	logged, _ := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})

	if _, err := svc.SetRole(context.Background(), logged.UserID, "pilot"); !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("error = %v, want ErrInvalidRole", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	logged, _ := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})

	if err := svc.Logout(context.Background(), logged.UserID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if err := svc.Logout(context.Background(), logged.UserID); err != nil {
		t.Fatalf("second Logout() error = %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("logout did not discard the stored profile")
	}
}

func TestCurrentReturnsStoredProfile(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	logged, _ := svc.Login(context.Background(), ports.LoginInput{Email: "rider@example.com"})

	got, err := svc.Current(context.Background(), logged.UserID)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got.Email != "rider@example.com" || got.Name != MockName {
		t.Fatalf("profile = %+v", got)
	}
}
