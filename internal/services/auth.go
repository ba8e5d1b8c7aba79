package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/oauth"
)

var (
	// ErrAccountDisabled indicates the account exists but may not log in.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrTwoFactorInvalid indicates a wrong or expired one-time code.
	ErrTwoFactorInvalid = errors.New("invalid two-factor code")
	// ErrTwoFactorNotSetup indicates no setup secret awaits confirmation.
	ErrTwoFactorNotSetup = errors.New("two-factor setup not started")
	// ErrTwoFactorDisabled indicates 2FA is not enabled on the account.
	ErrTwoFactorDisabled = errors.New("two-factor authentication is not enabled")
)

// IdentityProvider verifies external identity proofs. Satisfied by
// *oauth.Client; faked in tests.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, provider, code string) (string, error)
	FetchUser(ctx context.Context, provider, accessToken string) (*oauth.UserInfo, error)
}

// TokenPair is the credential set returned on full authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is the outcome of an external login attempt: either a token
// pair, or a pending session id when a two-factor code is still required.
type LoginResult struct {
	Tokens            *TokenPair   `json:"tokens,omitempty"`
	User              *models.User `json:"-"`
	PendingSessionID  string       `json:"pending_session_id,omitempty"`
	TwoFactorRequired bool         `json:"two_factor_required"`
}

type setupSecret struct {
	secret    string
	expiresAt time.Time
}

// AuthService orchestrates external identity verification, the two-factor
// challenge, and token issuance.
type AuthService struct {
	users    *UserService
	tokens   *auth.TokenService
	totp     *auth.TOTPService
	pending  *auth.PendingStore
	provider IdentityProvider

	// Setup secrets live here, not on the user record, until the user
	// confirms a correct code.
	setupMu sync.Mutex
	setups  map[string]setupSecret
}

// NewAuthService wires the authentication orchestrator.
func NewAuthService(cfg *config.Config, users *UserService, tokens *auth.TokenService, provider IdentityProvider) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		totp:     auth.NewTOTPService(cfg.Auth.TOTPIssuer),
		pending:  auth.NewPendingStore(cfg.Auth.GetPendingSessionTTL(), cfg.Auth.Max2FAAttempts),
		provider: provider,
		setups:   make(map[string]setupSecret),
	}
}

// Close releases the pending session store's background resources.
func (s *AuthService) Close() {
	s.pending.Close()
}

// LoginWithProvider verifies a provider token (or exchanges an
// authorization code first), resolves or provisions the local account, and
// either issues tokens or opens a pending two-factor session.
func (s *AuthService) LoginWithProvider(ctx context.Context, provider, accessToken, code, fingerprint string) (*LoginResult, error) {
	if accessToken == "" && code != "" {
		token, err := s.provider.ExchangeCode(ctx, provider, code)
		if err != nil {
			return nil, err
		}
		accessToken = token
	}

	info, err := s.provider.FetchUser(ctx, provider, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(provider, info)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	if user.TOTPEnabled {
		sessionID := s.pending.Create(user.ID)
		return &LoginResult{
			TwoFactorRequired: true,
			PendingSessionID:  sessionID,
			User:              user,
		}, nil
	}

	return s.completeLogin(user, fingerprint)
}

func (s *AuthService) resolveUser(provider string, info *oauth.UserInfo) (*models.User, error) {
	user, err := s.users.GetByProvider(provider, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// Link by email when the account predates the OAuth identity.
	user, err = s.users.GetByEmail(info.Email)
	if err == nil {
		if linkErr := s.users.LinkProvider(user.ID, provider, info.ID, info.Picture); linkErr != nil {
			return nil, linkErr
		}
		return s.users.GetByID(user.ID)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// First sight of this identity: provision a viewer account.
	created, err := s.users.Create(info.Email, info.Email, info.Name, "", models.RoleViewer)
	if err != nil {
		return nil, err
	}
	if err := s.users.LinkProvider(created.ID, provider, info.ID, info.Picture); err != nil {
		return nil, err
	}
	return s.users.GetByID(created.ID)
}

func (s *AuthService) completeLogin(user *models.User, fingerprint string) (*LoginResult, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	s.users.RecordLogin(user.Username, sessionID, fingerprint)

	return &LoginResult{
		Tokens: &TokenPair{AccessToken: access, RefreshToken: refresh},
		User:   user,
	}, nil
}

// VerifyTwoFactor redeems a pending session with a one-time code. The
// session is single use; wrong codes burn a bounded attempt budget.
func (s *AuthService) VerifyTwoFactor(sessionID, code, fingerprint string) (*LoginResult, error) {
	userID, err := s.pending.Peek(sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if !s.totp.VerifyCode(user.TOTPSecret, code) {
		if failErr := s.pending.Fail(sessionID); failErr != nil {
			return nil, failErr
		}
		return nil, ErrTwoFactorInvalid
	}

	if _, err := s.pending.Claim(sessionID); err != nil {
		return nil, err
	}
	return s.completeLogin(user, fingerprint)
}

// Refresh verifies a refresh token and issues a fresh access token bound
// to the subject's current role. The refresh token is not rotated.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return "", auth.ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.Subject)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if !user.IsActive() {
		return "", ErrAccountDisabled
	}
	return s.tokens.IssueAccessToken(user.ID, string(user.Role))
}

// SetupTwoFactor generates a fresh secret and provisioning URI. The secret
// is held in memory only until EnableTwoFactor confirms it.
func (s *AuthService) SetupTwoFactor(userID string) (*auth.TOTPKey, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	key, err := s.totp.GenerateSecret(user.Username)
	if err != nil {
		return nil, err
	}

	s.setupMu.Lock()
	s.setups[userID] = setupSecret{
		secret:    key.Secret,
		expiresAt: time.Now().Add(10 * time.Minute),
	}
	s.setupMu.Unlock()

	return key, nil
}

// EnableTwoFactor confirms the setup secret with a correct code and only
// then persists it on the account.
func (s *AuthService) EnableTwoFactor(userID, code string) error {
	s.setupMu.Lock()
	setup, ok := s.setups[userID]
	if ok && time.Now().After(setup.expiresAt) {
		delete(s.setups, userID)
		ok = false
	}
	s.setupMu.Unlock()

	if !ok {
		return ErrTwoFactorNotSetup
	}
	if !s.totp.VerifyCode(setup.secret, code) {
		return ErrTwoFactorInvalid
	}

	if err := s.users.SetTOTP(userID, setup.secret, true); err != nil {
		return err
	}

	s.setupMu.Lock()
	delete(s.setups, userID)
	s.setupMu.Unlock()
	return nil
}

// DisableTwoFactor verifies a current code and clears the stored secret.
func (s *AuthService) DisableTwoFactor(userID, code string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled {
		return ErrTwoFactorDisabled
	}
	if !s.totp.VerifyCode(user.TOTPSecret, code) {
		return ErrTwoFactorInvalid
	}
	return s.users.SetTOTP(userID, "", false)
}

// Logout clears the tracked session. Issued tokens stay valid until their
// natural expiry; there is no revocation list.
func (s *AuthService) Logout(userID string) error {
	return s.users.ClearSession(userID)
}

// CurrentCode exposes the debug helper for operational tooling.
func (s *AuthService) CurrentCode(secret string) (string, error) {
	return s.totp.CurrentCode(secret)
}

// DeviceFingerprint derives a stable hash from user agent and client IP.
func DeviceFingerprint(userAgent, ip string) string {
	sum := sha256.Sum256([]byte(userAgent + "|" + ip))
	return hex.EncodeToString(sum[:16])
}
