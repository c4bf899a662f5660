// Package session owns the signed-in user identity.
//
// Identity is deliberately thin: an opaque `user-<unix-ms>` id generated on
// this device and announced to the backend without verification. Components
// receive the session explicitly instead of reading ambient state, so its
// lifecycle is visible: created at sign-in, read-only until sign-out.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"styleswipe/internal/model"
	"styleswipe/internal/store"
)

// MissingUserError means no session exists. Screens that need identity stop
// and show a blocking message; they do not retry.
type MissingUserError struct{}

func (MissingUserError) Error() string {
	return "not signed in; run `styleswipe signin --name <name>` first"
}

// IsMissingUser reports whether err is a missing-session condition.
func IsMissingUser(err error) bool {
	var m MissingUserError
	return errors.As(err, &m)
}

// Registrar is the backend side of sign-in (api.Client satisfies it).
type Registrar interface {
	RegisterUser(ctx context.Context, userID, name string) error
}

// NewUserID generates the opaque local identity for a sign-in.
func NewUserID(now time.Time) string {
	return fmt.Sprintf("user-%d", now.UnixMilli())
}

// SignIn creates a session, registers it with the backend and persists it.
// Registration failure aborts the sign-in; a half-created identity the
// server never heard about would make every later mutation silently 404.
func SignIn(ctx context.Context, reg Registrar, name string) (model.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Session{}, errors.New("name is empty")
	}
	now := time.Now().UTC()
	s := model.Session{
		UserID:    NewUserID(now),
		UserName:  name,
		CreatedAt: now,
	}
	if err := reg.RegisterUser(ctx, s.UserID, s.UserName); err != nil {
		return model.Session{}, fmt.Errorf("registering user: %w", err)
	}

	cfg, err := store.LoadConfig()
	if err != nil {
		return model.Session{}, err
	}
	cfg.Session = &s
	if err := store.SaveConfig(cfg); err != nil {
		return model.Session{}, err
	}
	return s, nil
}

// Current loads the persisted session, or MissingUserError.
func Current() (model.Session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return model.Session{}, err
	}
	if cfg.Session == nil || cfg.Session.Empty() {
		return model.Session{}, MissingUserError{}
	}
	return *cfg.Session, nil
}

// SignOut tears the session down. Local exclusion sets are kept; they are
// keyed by user id and become relevant again if the same id signs back in.
func SignOut() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Session == nil {
		return nil
	}
	cfg.Session = nil
	return store.SaveConfig(cfg)
}
