// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// The serialized session lives in the OS keychain via internal/keychain so a
// new CLI invocation picks up where the previous one logged in.

import (
	"encoding/json"

	"kavio/cli/internal/keychain"
)

// Load reads the persisted session from the keychain. Missing or unreadable
// state yields the anonymous zero value.
func Load() (Session, error) {
	var s Session
	km, err := keychain.GetManager()
	if err != nil {
		return s, err
	}

	data, err := km.LoadSessionState()
	if err != nil {
		// No stored state means anonymous, not an error worth surfacing.
		return Session{}, nil
	}
	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		return Session{}, nil
	}
	return s, nil
}

// Save writes the session to the keychain.
func Save(s Session) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	if err := km.SaveSessionState(b); err != nil {
		return err
	}
	return km.SaveSessionToken(s.Token)
}

// Clear removes the persisted session from the keychain.
func Clear() error {
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return km.ClearSession()
}
