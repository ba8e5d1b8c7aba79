package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
)

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService("test-secret", "portfolio-test", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenService("", "portfolio-test", time.Hour, 24*time.Hour)
	if !errors.Is(err, auth.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken("user-1", "ADMIN")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", claims.Role)
	}
	if claims.TokenType != auth.TokenTypeAccess {
		t.Errorf("token type = %q, want %q", claims.TokenType, auth.TokenTypeAccess)
	}
}

func TestRefreshTokenCarriesType(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueRefreshToken("user-2", "VIEWER")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		t.Errorf("token type = %q, want %q", claims.TokenType, auth.TokenTypeRefresh)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken("user-1", "ADMIN")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	// Flip a byte in the signature.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	if _, err := svc.Verify(string(tampered)); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("tampered token verified, err = %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := auth.NewTokenService("different-secret", "portfolio-test", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := svc.IssueAccessToken("user-1", "ADMIN")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("token from another key verified, err = %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc, err := auth.NewTokenService("test-secret", "portfolio-test", time.Nanosecond, time.Nanosecond)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := svc.IssueAccessToken("user-1", "ADMIN")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := svc.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expired token verified, err = %v", err)
	}
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	issuerA, err := auth.NewTokenService("test-secret", "issuer-a", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	issuerB, err := auth.NewTokenService("test-secret", "issuer-b", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := issuerA.IssueAccessToken("user-1", "ADMIN")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	if _, err := issuerB.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("cross-issuer token verified, err = %v", err)
	}
}
