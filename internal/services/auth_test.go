package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/oauth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// fakeProvider satisfies services.IdentityProvider without any network.
type fakeProvider struct {
	user *oauth.UserInfo
	err  error
}

func (f *fakeProvider) ExchangeCode(_ context.Context, _, code string) (string, error) {
	if code == "good-code" {
		return "exchanged-token", nil
	}
	return "", oauth.ErrInvalidToken
}

func (f *fakeProvider) FetchUser(_ context.Context, _, _ string) (*oauth.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func setupAuth(t *testing.T, provider *fakeProvider) (*services.AuthService, *services.UserService) {
	t.Helper()

	cfg := testConfig()
	db := setupTestDB(t)
	users := services.NewUserService(db, cfg)

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, "portfolio-test", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	svc := services.NewAuthService(cfg, users, tokens, provider)
	t.Cleanup(svc.Close)
	return svc, users
}

func TestLoginProvisionsViewerAccount(t *testing.T) {
	provider := &fakeProvider{user: &oauth.UserInfo{
		ID:    "google-123",
		Email: "new@example.com",
		Name:  "New User",
	}}
	svc, users := setupAuth(t, provider)

	result, err := svc.LoginWithProvider(context.Background(), "google", "provider-token", "", "fp")
	if err != nil {
		t.Fatalf("LoginWithProvider: %v", err)
	}
	if result.TwoFactorRequired {
		t.Fatal("fresh viewer should not be challenged for 2FA")
	}
	if result.Tokens == nil || result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if result.User.Role != models.RoleViewer {
		t.Errorf("provisioned role = %v, want VIEWER", result.User.Role)
	}

	// The OAuth identity is linked, so a second login hits the same account.
	again, err := svc.LoginWithProvider(context.Background(), "google", "provider-token", "", "fp")
	if err != nil {
		t.Fatalf("second LoginWithProvider: %v", err)
	}
	if again.User.ID != result.User.ID {
		t.Error("second login should resolve the same account")
	}

	linked, err := users.GetByProvider("google", "google-123")
	if err != nil {
		t.Fatalf("GetByProvider: %v", err)
	}
	if linked.Email != "new@example.com" {
		t.Errorf("linked email = %q", linked.Email)
	}
}

func TestLoginLinksExistingAccountByEmail(t *testing.T) {
	provider := &fakeProvider{user: &oauth.UserInfo{
		ID:    "gh-9",
		Email: "admin@example.com",
		Name:  "Admin",
	}}
	svc, users := setupAuth(t, provider)

	existing, err := users.Create("admin", "admin@example.com", "Admin", "password123", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := svc.LoginWithProvider(context.Background(), "github", "provider-token", "", "fp")
	if err != nil {
		t.Fatalf("LoginWithProvider: %v", err)
	}
	if result.User.ID != existing.ID {
		t.Error("login should link to the pre-existing account, not provision")
	}
	if result.User.Role != models.RoleAdmin {
		t.Errorf("role = %v, the existing role must be kept", result.User.Role)
	}
	if result.User.OAuthProvider != "github" {
		t.Errorf("provider = %q, want github", result.User.OAuthProvider)
	}
}

func TestLoginExchangesCode(t *testing.T) {
	provider := &fakeProvider{user: &oauth.UserInfo{
		ID:    "google-77",
		Email: "code@example.com",
	}}
	svc, _ := setupAuth(t, provider)

	if _, err := svc.LoginWithProvider(context.Background(), "google", "", "good-code", "fp"); err != nil {
		t.Fatalf("login via code: %v", err)
	}

	if _, err := svc.LoginWithProvider(context.Background(), "google", "", "bad-code", "fp"); !errors.Is(err, oauth.ErrInvalidToken) {
		t.Fatalf("bad code = %v, want ErrInvalidToken", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	provider := &fakeProvider{user: &oauth.UserInfo{
		ID:    "google-5",
		Email: "off@example.com",
	}}
	svc, users := setupAuth(t, provider)

	user, err := users.Create("off", "off@example.com", "", "", models.RoleViewer)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.SetEnabled(user.ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}

	if _, err := svc.LoginWithProvider(context.Background(), "google", "provider-token", "", "fp"); !errors.Is(err, services.ErrAccountDisabled) {
		t.Fatalf("disabled login = %v, want ErrAccountDisabled", err)
	}
}

func TestTwoFactorLifecycle(t *testing.T) {
	provider := &fakeProvider{user: &oauth.UserInfo{
		ID:    "google-2fa",
		Email: "secure@example.com",
	}}
	svc, users := setupAuth(t, provider)

	user, err := users.Create("secure", "secure@example.com", "", "", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Enable before setup fails.
	if err := svc.EnableTwoFactor(user.ID, "000000"); !errors.Is(err, services.ErrTwoFactorNotSetup) {
		t.Fatalf("enable before setup = %v, want ErrTwoFactorNotSetup", err)
	}

	key, err := svc.SetupTwoFactor(user.ID)
	if err != nil {
		t.Fatalf("SetupTwoFactor: %v", err)
	}

	// A wrong code must not flip the flag or persist the secret.
	if err := svc.EnableTwoFactor(user.ID, "000000"); !errors.Is(err, services.ErrTwoFactorInvalid) {
		t.Fatalf("enable with wrong code = %v, want ErrTwoFactorInvalid", err)
	}
	got, _ := users.GetByID(user.ID)
	if got.TOTPEnabled || got.TOTPSecret != "" {
		t.Fatal("secret must not persist until a correct code confirms it")
	}

	code, err := svc.CurrentCode(key.Secret)
	if err != nil {
		t.Fatalf("CurrentCode: %v", err)
	}
	if err := svc.EnableTwoFactor(user.ID, code); err != nil {
		t.Fatalf("EnableTwoFactor: %v", err)
	}
	got, _ = users.GetByID(user.ID)
	if !got.TOTPEnabled || got.TOTPSecret != key.Secret {
		t.Fatal("secret should persist after confirmation")
	}

	// Login now opens a pending session instead of issuing tokens.
	result, err := svc.LoginWithProvider(context.Background(), "google", "provider-token", "", "fp")
	if err != nil {
		t.Fatalf("LoginWithProvider: %v", err)
	}
	if !result.TwoFactorRequired || result.PendingSessionID == "" {
		t.Fatal("login with 2FA on should return a pending session")
	}
	if result.Tokens != nil {
		t.Fatal("no tokens before the code is verified")
	}

	// Wrong code burns an attempt.
	if _, err := svc.VerifyTwoFactor(result.PendingSessionID, "000000", "fp"); !errors.Is(err, services.ErrTwoFactorInvalid) {
		t.Fatalf("wrong 2FA code = %v, want ErrTwoFactorInvalid", err)
	}

	code, err = svc.CurrentCode(key.Secret)
	if err != nil {
		t.Fatalf("CurrentCode: %v", err)
	}
	final, err := svc.VerifyTwoFactor(result.PendingSessionID, code, "fp")
	if err != nil {
		t.Fatalf("VerifyTwoFactor: %v", err)
	}
	if final.Tokens == nil || final.Tokens.AccessToken == "" {
		t.Fatal("verified 2FA should issue tokens")
	}

	// The session is single use.
	if _, err := svc.VerifyTwoFactor(result.PendingSessionID, code, "fp"); !errors.Is(err, auth.ErrPendingNotFound) {
		t.Fatalf("replayed session = %v, want ErrPendingNotFound", err)
	}

	// Disable with a wrong code fails, with the right code succeeds.
	if err := svc.DisableTwoFactor(user.ID, "000000"); !errors.Is(err, services.ErrTwoFactorInvalid) {
		t.Fatalf("disable wrong code = %v, want ErrTwoFactorInvalid", err)
	}
	code, _ = svc.CurrentCode(key.Secret)
	if err := svc.DisableTwoFactor(user.ID, code); err != nil {
		t.Fatalf("DisableTwoFactor: %v", err)
	}
	got, _ = users.GetByID(user.ID)
	if got.TOTPEnabled || got.TOTPSecret != "" {
		t.Fatal("secret should be cleared after disable")
	}

	if err := svc.DisableTwoFactor(user.ID, code); !errors.Is(err, services.ErrTwoFactorDisabled) {
		t.Fatalf("disable when off = %v, want ErrTwoFactorDisabled", err)
	}
}

func TestRefresh(t *testing.T) {
	provider := &fakeProvider{user: &oauth.UserInfo{
		ID:    "google-r",
		Email: "refresh@example.com",
	}}
	svc, users := setupAuth(t, provider)

	result, err := svc.LoginWithProvider(context.Background(), "google", "provider-token", "", "fp")
	if err != nil {
		t.Fatalf("LoginWithProvider: %v", err)
	}

	// An access token is not accepted on the refresh path.
	if _, err := svc.Refresh(result.Tokens.AccessToken); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("refresh with access token = %v, want ErrInvalidToken", err)
	}

	access, err := svc.Refresh(result.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access == "" {
		t.Fatal("expected a new access token")
	}

	// Disabling the account cuts off refresh.
	if err := users.SetEnabled(result.User.ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if _, err := svc.Refresh(result.Tokens.RefreshToken); !errors.Is(err, services.ErrAccountDisabled) {
		t.Fatalf("refresh when disabled = %v, want ErrAccountDisabled", err)
	}
}

func TestDeviceFingerprintStable(t *testing.T) {
	a := services.DeviceFingerprint("agent", "1.2.3.4")
	b := services.DeviceFingerprint("agent", "1.2.3.4")
	c := services.DeviceFingerprint("agent", "5.6.7.8")

	if a != b {
		t.Error("fingerprint should be deterministic")
	}
	if a == c {
		t.Error("different inputs should produce different fingerprints")
	}
	if len(a) != 32 {
		t.Errorf("fingerprint length = %d, want 32 hex chars", len(a))
	}
}
