package models

import "time"

// User represents an admin panel account.
type User struct {
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty"`
	LastActivityAt        *time.Time `json:"last_activity_at,omitempty"`
	ID                    string     `json:"id"`
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	FullName              string     `json:"full_name"`
	PasswordHash          string     `json:"-"` // empty for OAuth-only accounts
	Role                  Role       `json:"role"`
	OAuthProvider         string     `json:"oauth_provider,omitempty"`
	OAuthProviderID       string     `json:"-"`
	AvatarURL             string     `json:"avatar_url,omitempty"`
	TOTPSecret            string     `json:"-"`
	SessionID             string     `json:"-"`
	DeviceFingerprint     string     `json:"-"`
	TOTPEnabled           bool       `json:"totp_enabled"`
	Enabled               bool       `json:"enabled"`
	AccountNonExpired     bool       `json:"account_non_expired"`
	AccountNonLocked      bool       `json:"account_non_locked"`
	CredentialsNonExpired bool       `json:"credentials_non_expired"`
}

// IsActive reports whether the account may authenticate. All four state
// flags must hold together with the enabled flag.
func (u *User) IsActive() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}
