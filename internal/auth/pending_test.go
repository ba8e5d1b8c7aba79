package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
)

func TestPendingStoreRoundTrip(t *testing.T) {
	store := auth.NewPendingStore(time.Minute, 5)
	defer store.Close()

	id := store.Create("user-1")
	if id == "" {
		t.Fatal("Create returned empty session id")
	}

	userID, err := store.Peek(id)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Peek = %q, want user-1", userID)
	}

	// Peek does not consume.
	if _, err := store.Peek(id); err != nil {
		t.Fatalf("second Peek: %v", err)
	}

	userID, err = store.Claim(id)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Claim = %q, want user-1", userID)
	}
}

func TestPendingStoreSingleUse(t *testing.T) {
	store := auth.NewPendingStore(time.Minute, 5)
	defer store.Close()

	id := store.Create("user-1")
	if _, err := store.Claim(id); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	if _, err := store.Claim(id); !errors.Is(err, auth.ErrPendingNotFound) {
		t.Fatalf("second Claim = %v, want ErrPendingNotFound", err)
	}
}

func TestPendingStoreUnknownID(t *testing.T) {
	store := auth.NewPendingStore(time.Minute, 5)
	defer store.Close()

	if _, err := store.Peek("nope"); !errors.Is(err, auth.ErrPendingNotFound) {
		t.Errorf("Peek unknown = %v, want ErrPendingNotFound", err)
	}
	if err := store.Fail("nope"); !errors.Is(err, auth.ErrPendingNotFound) {
		t.Errorf("Fail unknown = %v, want ErrPendingNotFound", err)
	}
}

func TestPendingStoreExpiry(t *testing.T) {
	store := auth.NewPendingStore(10*time.Millisecond, 5)
	defer store.Close()

	id := store.Create("user-1")
	time.Sleep(25 * time.Millisecond)

	if _, err := store.Claim(id); err == nil {
		t.Fatal("expired entry should not be claimable")
	}
}

func TestPendingStoreClose(t *testing.T) {
	store := auth.NewPendingStore(time.Minute, 5)
	store.Close()
	store.Close() // idempotent

	// Entries stay usable; only the background sweeper stops.
	id := store.Create("user-1")
	if _, err := store.Claim(id); err != nil {
		t.Fatalf("Claim after Close: %v", err)
	}
}

func TestPendingStoreAttemptBudget(t *testing.T) {
	store := auth.NewPendingStore(time.Minute, 3)
	defer store.Close()

	id := store.Create("user-1")

	if err := store.Fail(id); err != nil {
		t.Fatalf("first Fail: %v", err)
	}
	if err := store.Fail(id); err != nil {
		t.Fatalf("second Fail: %v", err)
	}
	if err := store.Fail(id); !errors.Is(err, auth.ErrTooManyAttempts) {
		t.Fatalf("third Fail = %v, want ErrTooManyAttempts", err)
	}

	// The entry is gone once the budget is spent.
	if _, err := store.Peek(id); !errors.Is(err, auth.ErrPendingNotFound) {
		t.Fatalf("Peek after lockout = %v, want ErrPendingNotFound", err)
	}
}
