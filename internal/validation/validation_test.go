package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/validation"
)

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	after := start.AddDate(1, 0, 0)
	before := start.AddDate(-1, 0, 0)

	if err := validation.ValidateDateRange(start, &after); err != nil {
		t.Errorf("valid range: %v", err)
	}
	if err := validation.ValidateDateRange(start, nil); err != nil {
		t.Errorf("open-ended range should be valid: %v", err)
	}
	if err := validation.ValidateDateRange(start, &start); err != nil {
		t.Errorf("same-day range should be valid: %v", err)
	}
	if err := validation.ValidateDateRange(time.Time{}, nil); !errors.Is(err, validation.ErrStartDateRequired) {
		t.Errorf("zero start = %v, want ErrStartDateRequired", err)
	}
	if err := validation.ValidateDateRange(start, &before); !errors.Is(err, validation.ErrEndBeforeStart) {
		t.Errorf("end before start = %v, want ErrEndBeforeStart", err)
	}
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"alice", "a.b-c@d_e", "Bob99"} {
		if err := validation.ValidateUsername(ok); err != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"ab", "9starts-with-digit", "has space", "bad!char"} {
		if err := validation.ValidateUsername(bad); err == nil {
			t.Errorf("ValidateUsername(%q) = nil, want error", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := validation.ValidatePassword("12345678"); err != nil {
		t.Errorf("8 chars should pass: %v", err)
	}
	if err := validation.ValidatePassword("1234567"); !errors.Is(err, validation.ErrPasswordTooShort) {
		t.Errorf("short password = %v, want ErrPasswordTooShort", err)
	}
}

func TestSanitizeString(t *testing.T) {
	got := validation.SanitizeString("  <script>x</script>  ")
	if got != "&lt;script&gt;x&lt;/script&gt;" {
		t.Errorf("SanitizeString = %q", got)
	}
}

func TestSanitizeStringPreserveNewlines(t *testing.T) {
	got := validation.SanitizeStringPreserveNewlines("line one \r\n <b>two</b>")
	want := "line one\n&lt;b&gt;two&lt;/b&gt;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
