// Package services provides business logic for the portfolio backend.
package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists indicates a username or email uniqueness violation.
	ErrUserExists = errors.New("username or email already exists")
	// ErrLastSuperAdmin indicates the operation would remove the only
	// remaining super admin account.
	ErrLastSuperAdmin = errors.New("cannot delete the last super admin")
	// ErrInvalidCredentials indicates a password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const userColumns = `id, username, email, full_name, password_hash, role,
	enabled, account_non_expired, account_non_locked, credentials_non_expired,
	oauth_provider, oauth_provider_id, avatar_url, totp_secret, totp_enabled,
	session_id, device_fingerprint, last_login_at, last_activity_at,
	created_at, updated_at`

// UserService manages admin accounts.
type UserService struct {
	db  *database.DB
	cfg *config.Config
}

// NewUserService creates a new UserService instance.
func NewUserService(db *database.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// HashPassword hashes a plaintext password with the configured cost.
func (s *UserService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Auth.BcryptCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches the stored hash.
func (s *UserService) CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Create inserts a new admin account. Password may be empty for
// OAuth-only accounts.
func (s *UserService) Create(username, email, fullName, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.usernameOrEmailTaken(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	var hash sql.NullString
	if password != "" {
		h, err := s.HashPassword(password)
		if err != nil {
			return nil, err
		}
		hash = sql.NullString{String: h, Valid: true}
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO users (id, username, email, full_name, password_hash, role)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, username, email, fullName, hash, string(role),
	)
	if err != nil {
		// Unique index race between the check and the insert.
		return nil, ErrUserExists
	}

	return s.GetByID(id)
}

func (s *UserService) usernameOrEmailTaken(username, email string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM users WHERE username = ? OR email = ?",
		username, email,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *UserService) getBy(where string, args ...any) (*models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE "+where, args...)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	var passwordHash, provider, providerID, avatar, totpSecret, sessionID, fingerprint sql.NullString
	var lastLogin, lastActivity sql.NullTime

	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &passwordHash, &role,
		&u.Enabled, &u.AccountNonExpired, &u.AccountNonLocked, &u.CredentialsNonExpired,
		&provider, &providerID, &avatar, &totpSecret, &u.TOTPEnabled,
		&sessionID, &fingerprint, &lastLogin, &lastActivity,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Role = models.ParseRole(role)
	u.PasswordHash = passwordHash.String
	u.OAuthProvider = provider.String
	u.OAuthProviderID = providerID.String
	u.AvatarURL = avatar.String
	u.TOTPSecret = totpSecret.String
	u.SessionID = sessionID.String
	u.DeviceFingerprint = fingerprint.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	if lastActivity.Valid {
		t := lastActivity.Time
		u.LastActivityAt = &t
	}
	return &u, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.getBy("id = ?", id)
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.getBy("username = ?", username)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.getBy("email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByProvider retrieves a user by OAuth linkage.
func (s *UserService) GetByProvider(provider, providerID string) (*models.User, error) {
	return s.getBy("oauth_provider = ? AND oauth_provider_id = ?", provider, providerID)
}

// UpdateProfile changes display fields. Email uniqueness is re-checked
// only when the email actually changes.
func (s *UserService) UpdateProfile(id, email, fullName string) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && email != user.Email {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ? AND id != ?", email, id).Scan(&n); err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrUserExists
		}
		user.Email = email
	}
	if fullName != "" {
		user.FullName = fullName
	}

	_, err = s.db.Exec(
		"UPDATE users SET email = ?, full_name = ?, updated_at = ? WHERE id = ?",
		user.Email, user.FullName, time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// ChangePassword re-hashes and stores a new password after checking the
// old one. OAuth-only accounts (no password) skip the old-password check.
func (s *UserService) ChangePassword(id, oldPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" && !s.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?", hash, time.Now(), id)
	return err
}

// ResetPassword sets a new password without checking the old one. Only
// reachable through the super admin surface.
func (s *UserService) ResetPassword(id, newPassword string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?", hash, time.Now(), id)
	return err
}

// ChangeRole assigns a different role to the user.
func (s *UserService) ChangeRole(id string, role models.Role) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleSuperAdmin && role != models.RoleSuperAdmin {
		n, err := s.countSuperAdmins()
		if err != nil {
			return nil, err
		}
		if n <= 1 {
			return nil, ErrLastSuperAdmin
		}
	}
	_, err = s.db.Exec("UPDATE users SET role = ?, updated_at = ? WHERE id = ?", string(role), time.Now(), id)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// SetEnabled toggles the enabled flag.
func (s *UserService) SetEnabled(id string, enabled bool) error {
	res, err := s.db.Exec("UPDATE users SET enabled = ?, updated_at = ? WHERE id = ?", enabled, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) countSuperAdmins() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = ?", string(models.RoleSuperAdmin)).Scan(&n)
	return n, err
}

// Delete removes a user. Deleting the sole remaining super admin is
// refused. The count check and the delete are not one atomic step; two
// concurrent deletions of different super admins can race past it.
func (s *UserService) Delete(id string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperAdmin {
		n, err := s.countSuperAdmins()
		if err != nil {
			return err
		}
		if n <= 1 {
			return ErrLastSuperAdmin
		}
	}
	_, err = s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// RecordLogin stamps login/session tracking fields. Best effort: unknown
// usernames no-op silently.
func (s *UserService) RecordLogin(username, sessionID, fingerprint string) {
	now := time.Now()
	_, _ = s.db.Exec(
		`UPDATE users SET last_login_at = ?, last_activity_at = ?,
		 session_id = ?, device_fingerprint = ?, updated_at = ? WHERE username = ?`,
		now, now, sessionID, fingerprint, now, username,
	)
}

// TouchActivity updates the last-activity timestamp.
func (s *UserService) TouchActivity(id string) {
	now := time.Now()
	_, _ = s.db.Exec("UPDATE users SET last_activity_at = ? WHERE id = ?", now, id)
}

// ClearSession drops the tracked session on logout.
func (s *UserService) ClearSession(id string) error {
	_, err := s.db.Exec(
		"UPDATE users SET session_id = NULL, device_fingerprint = NULL, updated_at = ? WHERE id = ?",
		time.Now(), id,
	)
	return err
}

// SetTOTP persists a confirmed two-factor secret, or clears it when
// secret is empty.
func (s *UserService) SetTOTP(id, secret string, enabled bool) error {
	var stored sql.NullString
	if secret != "" {
		stored = sql.NullString{String: secret, Valid: true}
	}
	res, err := s.db.Exec(
		"UPDATE users SET totp_secret = ?, totp_enabled = ?, updated_at = ? WHERE id = ?",
		stored, enabled, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// LinkProvider attaches an OAuth identity to an existing account.
func (s *UserService) LinkProvider(id, provider, providerID, avatarURL string) error {
	_, err := s.db.Exec(
		"UPDATE users SET oauth_provider = ?, oauth_provider_id = ?, avatar_url = ?, updated_at = ? WHERE id = ?",
		provider, providerID, avatarURL, time.Now(), id,
	)
	return err
}

// UserFilter narrows List results.
type UserFilter struct {
	Role    models.Role
	Enabled *bool
	Search  string
}

// List returns a page of users plus the total match count.
func (s *UserService) List(filter UserFilter, limit, offset int) ([]models.User, int, error) {
	where := "1=1"
	args := []any{}
	if filter.Role != "" {
		where += " AND role = ?"
		args = append(args, string(filter.Role))
	}
	if filter.Enabled != nil {
		where += " AND enabled = ?"
		args = append(args, *filter.Enabled)
	}
	if filter.Search != "" {
		where += " AND (username LIKE ? OR email LIKE ? OR full_name LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(
		"SELECT "+userColumns+" FROM users WHERE "+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func scanUserRows(rows *sql.Rows) (*models.User, error) {
	var u models.User
	var role string
	var passwordHash, provider, providerID, avatar, totpSecret, sessionID, fingerprint sql.NullString
	var lastLogin, lastActivity sql.NullTime

	err := rows.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &passwordHash, &role,
		&u.Enabled, &u.AccountNonExpired, &u.AccountNonLocked, &u.CredentialsNonExpired,
		&provider, &providerID, &avatar, &totpSecret, &u.TOTPEnabled,
		&sessionID, &fingerprint, &lastLogin, &lastActivity,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = models.ParseRole(role)
	u.PasswordHash = passwordHash.String
	u.OAuthProvider = provider.String
	u.OAuthProviderID = providerID.String
	u.AvatarURL = avatar.String
	u.TOTPSecret = totpSecret.String
	u.SessionID = sessionID.String
	u.DeviceFingerprint = fingerprint.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	if lastActivity.Valid {
		t := lastActivity.Time
		u.LastActivityAt = &t
	}
	return &u, nil
}

// UserStats summarizes the admin directory.
type UserStats struct {
	ByRole      map[string]int `json:"by_role"`
	Total       int            `json:"total"`
	Enabled     int            `json:"enabled"`
	TwoFactorOn int            `json:"two_factor_enabled"`
}

// Stats computes directory totals.
func (s *UserService) Stats() (*UserStats, error) {
	stats := &UserStats{ByRole: make(map[string]int)}

	rows, err := s.db.Query("SELECT role, COUNT(*) FROM users GROUP BY role")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		stats.ByRole[role] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE enabled = TRUE").Scan(&stats.Enabled); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE totp_enabled = TRUE").Scan(&stats.TwoFactorOn); err != nil {
		return nil, err
	}
	return stats, nil
}

// EnsureSuperAdmin seeds the configured super admin account on first run.
func (s *UserService) EnsureSuperAdmin() error {
	_, err := s.GetByUsername(s.cfg.Admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}
	_, err = s.Create(
		s.cfg.Admin.Username,
		s.cfg.Admin.Email,
		s.cfg.Admin.FullName,
		s.cfg.Admin.Password,
		models.RoleSuperAdmin,
	)
	return err
}
