package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	CORS     CORSConfig     `yaml:"cors"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	AccessTokenTTL    string `yaml:"access_token_ttl"`
	RefreshTokenTTL   string `yaml:"refresh_token_ttl"`
	TOTPIssuer        string `yaml:"totp_issuer"`
	PendingSessionTTL string `yaml:"pending_session_ttl"`
	BcryptCost        int    `yaml:"bcrypt_cost"`
	Max2FAAttempts    int    `yaml:"max_2fa_attempts"`
}

type OAuthConfig struct {
	Google GoogleOAuth `yaml:"google"`
	GitHub GitHubOAuth `yaml:"github"`
}

type GoogleOAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type GitHubOAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type UploadsConfig struct {
	Dir         string `yaml:"dir"`
	BaseURL     string `yaml:"base_url"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	ContentType string `yaml:"content_types"` // comma-separated allow-list
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

func (c *AuthConfig) GetAccessTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

func (c *AuthConfig) GetRefreshTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

func (c *AuthConfig) GetPendingSessionTTL() time.Duration {
	d, err := time.ParseDuration(c.PendingSessionTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// Load reads the YAML config at path. An empty path yields the
// built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := &Config{}
		setDefaults(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/portfolio.db"
	}
	if cfg.Auth.AccessTokenTTL == "" {
		cfg.Auth.AccessTokenTTL = "1h"
	}
	if cfg.Auth.RefreshTokenTTL == "" {
		cfg.Auth.RefreshTokenTTL = "168h"
	}
	if cfg.Auth.PendingSessionTTL == "" {
		cfg.Auth.PendingSessionTTL = "5m"
	}
	if cfg.Auth.TOTPIssuer == "" {
		cfg.Auth.TOTPIssuer = "MyTechPortfolio"
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 12
	}
	if cfg.Auth.Max2FAAttempts == 0 {
		cfg.Auth.Max2FAAttempts = 5
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "./data/uploads"
	}
	if cfg.Uploads.BaseURL == "" {
		cfg.Uploads.BaseURL = "/uploads"
	}
	if cfg.Uploads.MaxSizeMB == 0 {
		cfg.Uploads.MaxSizeMB = 10
	}
	if cfg.Uploads.ContentType == "" {
		cfg.Uploads.ContentType = "image/png,image/jpeg,image/webp,image/svg+xml,application/pdf"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@localhost"
	}
}
