package database

import (
	"database/sql"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT,
		role TEXT NOT NULL DEFAULT 'VIEWER',
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		account_non_expired BOOLEAN NOT NULL DEFAULT TRUE,
		account_non_locked BOOLEAN NOT NULL DEFAULT TRUE,
		credentials_non_expired BOOLEAN NOT NULL DEFAULT TRUE,
		oauth_provider TEXT,
		oauth_provider_id TEXT,
		avatar_url TEXT,
		totp_secret TEXT,
		totp_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		session_id TEXT,
		device_fingerprint TEXT,
		last_login_at DATETIME,
		last_activity_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		tech_stacks TEXT NOT NULL DEFAULT '',
		repo_url TEXT,
		demo_url TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS academics (
		id TEXT PRIMARY KEY,
		institution TEXT NOT NULL,
		degree TEXT NOT NULL,
		field TEXT NOT NULL DEFAULT '',
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		gpa REAL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS tech_stacks (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		proficiency INTEGER NOT NULL DEFAULT 3,
		icon_url TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS testimonials (
		id TEXT PRIMARY KEY,
		author TEXT NOT NULL,
		position TEXT,
		company TEXT,
		quote TEXT NOT NULL,
		avatar_url TEXT,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		file_name TEXT UNIQUE NOT NULL,
		original_name TEXT NOT NULL,
		content_type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		url TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		spam BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT,
		username TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		resource_type TEXT NOT NULL DEFAULT '',
		resource_id TEXT,
		ip_address TEXT,
		user_agent TEXT,
		details TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_oauth
		ON users(oauth_provider, oauth_provider_id)
		WHERE oauth_provider IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_order ON projects(display_order)`,
	`CREATE INDEX IF NOT EXISTS idx_testimonials_approved ON testimonials(approved)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_read ON contact_messages(is_read)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_logs(created_at)`,
}

func runMigrations(db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}
