package service

import (
	"errors"
	"strings"
	"testing"
)

func TestLogin(t *testing.T) {
	svc := NewAuthService("admin", "secret123", "test-jwt-secret")

	resp, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}
	if !strings.HasPrefix(resp.HostID, "host_") {
		t.Fatalf("unexpected host id %q", resp.HostID)
	}

	claims, err := svc.ValidateHostToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateHostToken: %v", err)
	}
	if claims.HostID != resp.HostID {
		t.Fatalf("expected host id %q, got %q", resp.HostID, claims.HostID)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewAuthService("admin", "secret123", "test-jwt-secret")

	for _, tc := range []struct{ user, pass string }{
		{"admin", "wrong"},
		{"intruder", "secret123"},
		{"", ""},
	} {
		if _, err := svc.Login(tc.user, tc.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login %q/%q: expected ErrInvalidCredentials, got %v", tc.user, tc.pass, err)
		}
	}
}

func TestValidateHostToken_Rejections(t *testing.T) {
	svc := NewAuthService("admin", "secret123", "test-jwt-secret")

	if _, err := svc.ValidateHostToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	other := NewAuthService("admin", "secret123", "different-secret")
	resp, err := other.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.ValidateHostToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}
