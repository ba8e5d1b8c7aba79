package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
)

func TestGenerateSecret(t *testing.T) {
	svc := auth.NewTOTPService("TestIssuer")

	key, err := svc.GenerateSecret("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}
	if key.Secret == "" {
		t.Error("secret should not be empty")
	}
	if !strings.HasPrefix(key.ProvisioningURI, "otpauth://totp/") {
		t.Errorf("provisioning URI = %q, want otpauth://totp/ prefix", key.ProvisioningURI)
	}
	if !strings.Contains(key.ProvisioningURI, "TestIssuer") {
		t.Errorf("provisioning URI should carry the issuer: %q", key.ProvisioningURI)
	}

	other, err := svc.GenerateSecret("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}
	if other.Secret == key.Secret {
		t.Error("secrets should be unique per generation")
	}
}

func TestVerifyCode(t *testing.T) {
	svc := auth.NewTOTPService("TestIssuer")

	key, err := svc.GenerateSecret("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}

	code, err := svc.CurrentCode(key.Secret)
	if err != nil {
		t.Fatalf("CurrentCode: %v", err)
	}

	if !svc.VerifyCode(key.Secret, code) {
		t.Error("current code should verify")
	}
	if svc.VerifyCode(key.Secret, "000000") && code != "000000" {
		t.Error("wrong code should not verify")
	}
	if svc.VerifyCode(key.Secret, "") {
		t.Error("empty code should not verify")
	}
	if svc.VerifyCode("", code) {
		t.Error("empty secret should not verify")
	}
	if svc.VerifyCode(key.Secret, "not-a-code") {
		t.Error("malformed code should not verify, not error")
	}
}

func TestVerifyCodeSkewWindow(t *testing.T) {
	svc := auth.NewTOTPService("TestIssuer")

	key, err := svc.GenerateSecret("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}

	// One step behind stays inside the +-1 window tolerance.
	previous, err := totp.GenerateCode(key.Secret, time.Now().UTC().Add(-30*time.Second))
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if !svc.VerifyCode(key.Secret, previous) {
		t.Error("code from the previous window should verify")
	}

	// Three steps out is beyond any tolerated skew.
	stale, err := totp.GenerateCode(key.Secret, time.Now().UTC().Add(-90*time.Second))
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	current, err := svc.CurrentCode(key.Secret)
	if err != nil {
		t.Fatalf("CurrentCode: %v", err)
	}
	if stale != current && svc.VerifyCode(key.Secret, stale) {
		t.Error("code from 90s ago should not verify")
	}
}
