// Package oauth verifies external identities against Google and GitHub.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
)

// Supported provider names.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

var (
	// ErrInvalidToken indicates the provider rejected the supplied token.
	ErrInvalidToken = errors.New("identity provider rejected token")
	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported identity provider")
)

// UserInfo is the verified identity returned by a provider.
type UserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// Client talks to the configured identity providers.
type Client struct {
	google *oauth2.Config
	github *oauth2.Config
	http   *http.Client

	// Overridable in tests.
	googleUserInfoURL string
	githubUserInfoURL string
	githubEmailsURL   string
}

// NewClient builds a Client from OAuth configuration.
func NewClient(cfg config.OAuthConfig) *Client {
	return &Client{
		google: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		github: &oauth2.Config{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			RedirectURL:  cfg.GitHub.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		http:              &http.Client{Timeout: 10 * time.Second},
		googleUserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		githubUserInfoURL: "https://api.github.com/user",
		githubEmailsURL:   "https://api.github.com/user/emails",
	}
}

// ExchangeCode swaps an authorization code for a provider access token.
func (c *Client) ExchangeCode(ctx context.Context, provider, code string) (string, error) {
	var conf *oauth2.Config
	switch provider {
	case ProviderGoogle:
		conf = c.google
	case ProviderGitHub:
		conf = c.github
	default:
		return "", ErrUnsupportedProvider
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", ErrInvalidToken
	}
	return token.AccessToken, nil
}

// FetchUser verifies a provider access token by fetching the user profile.
func (c *Client) FetchUser(ctx context.Context, provider, accessToken string) (*UserInfo, error) {
	switch provider {
	case ProviderGoogle:
		return c.fetchGoogleUser(ctx, accessToken)
	case ProviderGitHub:
		return c.fetchGitHubUser(ctx, accessToken)
	default:
		return nil, ErrUnsupportedProvider
	}
}

func (c *Client) get(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrInvalidToken
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ErrInvalidToken
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}

func (c *Client) fetchGoogleUser(ctx context.Context, accessToken string) (*UserInfo, error) {
	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := c.get(ctx, c.googleUserInfoURL, accessToken, &googleUser); err != nil {
		return nil, err
	}
	if googleUser.ID == "" || googleUser.Email == "" {
		return nil, ErrInvalidToken
	}
	return &UserInfo{
		ID:      googleUser.ID,
		Email:   googleUser.Email,
		Name:    googleUser.Name,
		Picture: googleUser.Picture,
	}, nil
}

func (c *Client) fetchGitHubUser(ctx context.Context, accessToken string) (*UserInfo, error) {
	var githubUser struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.get(ctx, c.githubUserInfoURL, accessToken, &githubUser); err != nil {
		return nil, err
	}
	if githubUser.ID == 0 {
		return nil, ErrInvalidToken
	}

	// The user endpoint omits the email when it is private.
	if githubUser.Email == "" {
		email, err := c.fetchGitHubEmail(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		githubUser.Email = email
	}

	name := githubUser.Name
	if name == "" {
		name = githubUser.Login
	}
	return &UserInfo{
		ID:      fmt.Sprintf("%d", githubUser.ID),
		Email:   githubUser.Email,
		Name:    name,
		Picture: githubUser.AvatarURL,
	}, nil
}

func (c *Client) fetchGitHubEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := c.get(ctx, c.githubEmailsURL, accessToken, &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", ErrInvalidToken
}
