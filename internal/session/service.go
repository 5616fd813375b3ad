// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"

	"kavio/cli/internal/apierr"
	"kavio/cli/internal/backend"
	"kavio/cli/internal/model"
	"kavio/cli/internal/notify"
)

// MinPasswordLen is the shortest password the registration form accepts.
const MinPasswordLen = 8

// Service centralizes the session lifecycle: login, logout, registration and
// forced expiry. It is the only writer of the session store; outcomes are
// reported through the notification channel, never through panics or stray
// prints.
type Service struct {
	api      backend.API
	store    *Store
	notifier notify.Notifier
}

// NewService wires a session service to the backend, store and notifier.
// It registers itself as the backend's unauthorized handler, so any 401
// anywhere in the data-access layer funnels into Expire exactly once per
// failed call.
func NewService(api backend.API, store *Store, notifier notify.Notifier) *Service {
	s := &Service{api: api, store: store, notifier: notifier}
	api.SetUnauthorizedHandler(s.Expire)
	return s
}

// Store returns the session store the service mutates.
func (s *Service) Store() *Store { return s.store }

// Restore loads the persisted session from the keychain into the store.
// Missing state leaves the store anonymous.
func (s *Service) Restore() {
	if sess, err := Load(); err == nil && !sess.Anonymous() {
		s.store.Set(sess)
	}
}

// Login authenticates the credentials against the backend. On success the
// whole session is overwritten from the response and one success notification
// is emitted; on any failure the session is left untouched, one error
// notification is emitted and the cause is swallowed. The caller only learns
// whether login happened, mirroring the backend's own refusal to distinguish
// bad credentials from an unreachable server.
func (s *Service) Login(ctx context.Context, creds model.Credentials) bool {
	user, err := s.api.Login(ctx, creds)
	if err != nil {
		s.notifier.Error("User credentials are incorrect")
		return false
	}

	sess := Session{
		UserID:      user.ID,
		DisplayName: user.Name,
		LoginHandle: user.Handle,
		AvatarURL:   user.Photo,
		Token:       user.Token,
	}
	s.store.Set(sess)
	_ = Save(sess) // best effort; the in-memory session is authoritative
	s.notifier.Success("User authenticated successfully")
	return true
}

// Logout resets the session to anonymous and drops the persisted copy.
// Synchronous and idempotent; no revocation call is made to the backend.
func (s *Service) Logout() {
	s.store.Clear()
	_ = Clear()
}

// Expire is the centralized 401 handler: it logs the user out and reports the
// expired session once. When the store is already anonymous (a rejected
// anonymous request, or overlapping 401s after the first already cleared the
// session mid-flight is not possible since mutations are serialized) nothing
// is reported, so an unauthenticated login attempt never produces a spurious
// "session expired" on top of its own failure notification.
func (s *Service) Expire() {
	if s.store.Current().Anonymous() {
		return
	}
	s.Logout()
	s.notifier.Error("Session expired, please log in again")
}

// Register creates a new account. Password rules are enforced client-side
// before anything reaches the network: at least MinPasswordLen characters and
// a matching confirmation. The plaintext password is not retained anywhere
// after the request.
func (s *Service) Register(ctx context.Context, user model.User, confirmPassword string) error {
	if len(user.Password) < MinPasswordLen || user.Password != confirmPassword {
		s.notifier.Error("User data is inconsistent, check the registration details")
		return apierr.New(apierr.ValidationFailed, "password too short or confirmation mismatch")
	}

	if _, err := s.api.Register(ctx, user); err != nil {
		s.notifier.Error("Error registering the user, try again")
		return err
	}
	s.notifier.Success("User registered successfully")
	return nil
}

// UpdateProfile updates the authenticated user's display data and refreshes
// the session with whatever the backend echoes back, keeping the current
// token.
func (s *Service) UpdateProfile(ctx context.Context, user model.User) error {
	cur := s.store.Current()
	user.ID = cur.UserID
	updated, err := s.api.UpdateProfile(ctx, user)
	if err != nil {
		if !apierr.IsUnauthorized(err) {
			s.notifier.Error("Error updating the profile")
		}
		return err
	}

	sess := Session{
		UserID:      cur.UserID,
		DisplayName: updated.Name,
		LoginHandle: updated.Handle,
		AvatarURL:   updated.Photo,
		Token:       cur.Token,
	}
	if updated.Name == "" {
		sess.DisplayName = cur.DisplayName
	}
	s.store.Set(sess)
	_ = Save(sess)
	s.notifier.Success("Profile updated successfully")
	return nil
}
