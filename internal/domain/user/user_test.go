package user

import (
	"errors"
	"testing"
)

func TestNewUserNormalizesInput(t *testing.T) {
	u, err := NewUser(" u-1 ", " ada@example.com ", "  Ada ", RoleCustomer)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if u.ID != "u-1" {
		t.Fatalf("expected trimmed id, got %q", u.ID)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("expected trimmed email, got %q", u.Email)
	}
	if u.Name != "Ada" {
		t.Fatalf("expected trimmed name, got %q", u.Name)
	}
	if u.Role != RoleCustomer {
		t.Fatalf("expected customer role, got %v", u.Role)
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name  string
		email string
		uname string
		role  Role
		err   error
	}{
		{name: "bad email", email: "not-an-email", uname: "Ada", role: RoleCustomer, err: ErrInvalidEmail},
		{name: "empty name", email: "ada@example.com", uname: "   ", role: RoleCustomer, err: ErrEmptyName},
		{name: "bad role", email: "ada@example.com", uname: "Ada", role: Role("pilot"), err: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser("u-1", tt.email, tt.uname, tt.role)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestSetRole(t *testing.T) {
	u, err := NewUser("u-1", "ada@example.com", "Ada", RoleCustomer)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}

	if err := u.SetRole(RoleDriver); err != nil {
		t.Fatalf("set role: %v", err)
	}
	if u.Role != RoleDriver {
		t.Fatalf("expected driver role, got %v", u.Role)
	}

	if err := u.SetRole(Role("pilot")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if u.Role != RoleDriver {
		t.Fatalf("role must be unchanged after invalid set, got %v", u.Role)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{in: "customer", want: RoleCustomer, ok: true},
		{in: " Driver ", want: RoleDriver, ok: true},
		{in: "VENDOR", want: RoleVendor, ok: true},
		{in: "admin", want: RoleAdmin, ok: true},
		{in: "pilot", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Fatalf("ParseRole(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("ParseRole(%q) expected ErrInvalidRole, got %v", tt.in, err)
		}
	}
}
