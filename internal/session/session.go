// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session is the single source of truth for "is the user
// authenticated". It holds the current user identity and bearer token,
// exposes the login/logout lifecycle, and feeds the token to every
// authenticated request made by the data-access layer.
//
// The store guarantees one invariant: an empty token means a fully anonymous
// session (zero user id, empty names). Mutations are serialized behind a
// RWMutex so the store can be shared across goroutines.
package session

import "sync"

// Session is the client-held representation of the current user.
// A zero Session is anonymous.
type Session struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	LoginHandle string `json:"login_handle"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Token       string `json:"token"`
}

// Anonymous reports whether the session has no authenticated user.
func (s Session) Anonymous() bool { return s.Token == "" }

// Store owns the current session. The token is read by the data-access layer
// and mutated only through Set and Clear.
type Store struct {
	mu       sync.RWMutex
	cur      Session
	watchers []func(Session)
}

// NewStore creates a store holding an anonymous session.
func NewStore() *Store { return &Store{} }

// Current returns a copy of the current session.
func (st *Store) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur
}

// Token returns the current bearer token, empty when anonymous.
// Satisfies backend.TokenSource.
func (st *Store) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur.Token
}

// Set replaces the session. A session without a token is normalized to the
// anonymous zero value, so token=="" and "no user" can never disagree.
func (st *Store) Set(s Session) {
	if s.Token == "" {
		s = Session{}
	}
	st.mu.Lock()
	st.cur = s
	watchers := st.watchers
	st.mu.Unlock()
	for _, w := range watchers {
		w(s)
	}
}

// Clear resets the session to anonymous. Calling it on an already anonymous
// store is a no-op in effect.
func (st *Store) Clear() { st.Set(Session{}) }

// Watch registers fn to run after every session change. Watchers are invoked
// outside the store lock with a copy of the new session.
func (st *Store) Watch(fn func(Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.watchers = append(st.watchers, fn)
}
