package jwt

import (
	"errors"
	"testing"
	"time"

	"zorp/internal/domain/user"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	token, claims, err := mgr.IssueUserToken("u-1", user.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if claims.Subject != "u-1" || claims.Role != user.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	_, parsed, err := mgr.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if parsed.Subject != "u-1" || parsed.Role != user.RoleCustomer {
		t.Fatalf("unexpected parsed claims: %+v", parsed)
	}
}

func TestIssueRejectsInvalidRole(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)
	if _, _, err := mgr.IssueUserToken("u-1", user.Role("pilot")); err == nil {
		t.Fatalf("expected error for invalid role")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, _, err := mgr.IssueUserToken("u-1", user.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := other.ParseAndValidate(token); err == nil {
		t.Fatalf("expected validation failure with wrong secret")
	}
}

func TestRoleAllowed(t *testing.T) {
	claims := NewUserClaims("u-1", user.RoleDriver, time.Hour)

	if err := RoleAllowed(claims, user.RoleCustomer, user.RoleDriver); err != nil {
		t.Fatalf("driver should be allowed: %v", err)
	}
	if err := RoleAllowed(claims, user.RoleAdmin); !errors.Is(err, ErrRoleForbidden) {
		t.Fatalf("expected ErrRoleForbidden, got %v", err)
	}
}
