package application

import (
	"fmt"
	"time"

	"github.com/abdidvp/invdash/internal/domain"
)

// Session is the explicitly passed session context. It owns the persisted token
// and user record; nothing else reads or writes the session store.
type Session struct {
	store domain.SessionStore
	state domain.SessionState
}

func NewSession(store domain.SessionStore) *Session {
	return &Session{store: store}
}

// Hydrate loads the persisted session. A missing session leaves the user signed out.
func (s *Session) Hydrate() error {
	state, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	s.state = state
	return nil
}

// Establish persists a new session. When user is nil the user record is read
// from the token claims.
func (s *Session) Establish(token string, user *domain.UserRecord) error {
	if token == "" {
		return fmt.Errorf("establishing session: empty token")
	}
	if user == nil {
		if claims, ok := domain.DecodeTokenClaims(token); ok {
			u := claims.User
			user = &u
		}
	}
	state := domain.SessionState{Token: token, User: user}
	if err := s.store.Save(state); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.state = state
	return nil
}

// Teardown clears the token and user record together. It reports whether a
// session was present.
func (s *Session) Teardown() (bool, error) {
	had := !s.state.IsEmpty()
	s.state = domain.SessionState{}
	if err := s.store.Clear(); err != nil {
		return had, fmt.Errorf("clearing session: %w", err)
	}
	return had, nil
}

func (s *Session) Token() string { return s.state.Token }

func (s *Session) User() *domain.UserRecord { return s.state.User }

func (s *Session) Authenticated() bool { return s.state.Token != "" }

// ExpiresAt returns the token expiry when the token carries one.
func (s *Session) ExpiresAt() (time.Time, bool) {
	claims, ok := domain.DecodeTokenClaims(s.state.Token)
	if !ok || claims.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return claims.ExpiresAt, true
}
