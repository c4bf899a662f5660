package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"styleswipe/internal/store"
)

type fakeRegistrar struct {
	calls int
	fail  bool

	lastID, lastName string
}

func (r *fakeRegistrar) RegisterUser(ctx context.Context, userID, name string) error {
	r.calls++
	r.lastID, r.lastName = userID, name
	if r.fail {
		return errors.New("backend down")
	}
	return nil
}

func TestNewUserID_Shape(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000000)
	if got := NewUserID(now); got != "user-1700000000000" {
		t.Fatalf("NewUserID = %s", got)
	}
}

func TestSignIn_RegistersAndPersists(t *testing.T) {
	t.Setenv("STYLESWIPE_CONFIG_DIR", t.TempDir())

	reg := &fakeRegistrar{}
	s, err := SignIn(context.Background(), reg, "  Ada Lovelace  ")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.UserName != "Ada Lovelace" {
		t.Fatalf("name not trimmed: %q", s.UserName)
	}
	if reg.calls != 1 || reg.lastID != s.UserID || reg.lastName != s.UserName {
		t.Fatalf("registration: %+v", reg)
	}

	got, err := Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.UserID != s.UserID {
		t.Fatalf("persisted session mismatch: %s vs %s", got.UserID, s.UserID)
	}
}

func TestSignIn_RegistrationFailureAborts(t *testing.T) {
	t.Setenv("STYLESWIPE_CONFIG_DIR", t.TempDir())

	reg := &fakeRegistrar{fail: true}
	if _, err := SignIn(context.Background(), reg, "Ada"); err == nil {
		t.Fatal("SignIn should fail when registration fails")
	}

	// No half-created identity may be left behind.
	if _, err := Current(); !IsMissingUser(err) {
		t.Fatalf("want missing user after aborted sign-in, got %v", err)
	}
}

func TestSignIn_EmptyNameRejected(t *testing.T) {
	t.Setenv("STYLESWIPE_CONFIG_DIR", t.TempDir())

	reg := &fakeRegistrar{}
	if _, err := SignIn(context.Background(), reg, "   "); err == nil {
		t.Fatal("SignIn should reject an empty name")
	}
	if reg.calls != 0 {
		t.Fatal("empty name must not reach the backend")
	}
}

func TestSignOut_ClearsSessionKeepsExclusions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STYLESWIPE_CONFIG_DIR", dir)

	reg := &fakeRegistrar{}
	s, err := SignIn(context.Background(), reg, "Ada")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	excl := store.OpenExclusions(dir)
	if err := excl.Add(context.Background(), s.UserID, store.KindItems, "a"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := Current(); !IsMissingUser(err) {
		t.Fatalf("want missing user after sign-out, got %v", err)
	}

	// Exclusions are keyed by user id and survive sign-out.
	ids, err := excl.Load(context.Background(), s.UserID, store.KindItems)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("exclusions lost on sign-out: %v", ids)
	}
}
