package auth

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPService generates shared secrets and verifies time-stepped codes.
type TOTPService struct {
	issuer string
}

// NewTOTPService creates a TOTPService with the configured issuer label.
func NewTOTPService(issuer string) *TOTPService {
	if issuer == "" {
		issuer = "MyTechPortfolio"
	}
	return &TOTPService{issuer: issuer}
}

// TOTPKey is a freshly generated secret plus its provisioning payload.
type TOTPKey struct {
	Secret          string
	ProvisioningURI string
}

// GenerateSecret creates a random base32 secret and the otpauth:// URI
// used to render the onboarding QR code.
func (s *TOTPService) GenerateSecret(accountName string) (*TOTPKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountName,
	})
	if err != nil {
		return nil, err
	}
	return &TOTPKey{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
	}, nil
}

// VerifyCode checks a 6-digit code against the secret for the current
// 30-second window with one window of tolerance on either side. Malformed
// input returns false, never an error.
func (s *TOTPService) VerifyCode(secret, code string) bool {
	if secret == "" || code == "" {
		return false
	}
	valid, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}

// CurrentCode derives the code for the current window. Debug/test helper,
// not used on the login path.
func (s *TOTPService) CurrentCode(secret string) (string, error) {
	return totp.GenerateCode(secret, time.Now().UTC())
}
