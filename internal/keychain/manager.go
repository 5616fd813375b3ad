// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain holds the session secrets in the OS credential store.
// It keeps the serialized session state and the bearer token between CLI
// invocations, behind a thread-safe manager. macOS and Windows are served by
// native backends; on macOS the `security` command is preferred over the
// keyring library.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "kavio"

// Keys used for storing secrets in the OS keychain.
const (
	KeySessionToken = "session_token"
	KeySessionState = "session_state"
)

// backend is the minimal key-value contract every credential store satisfies.
type backend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ringBackend adapts a keyring.Keyring to the backend contract.
type ringBackend struct {
	ring keyring.Keyring
}

func (r ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (r ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r ringBackend) Delete(key string) error { return r.ring.Remove(key) }

// Manager serializes access to the credential store.
type Manager struct {
	mu      sync.RWMutex
	backend backend
}

var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// NewManager picks a credential-store backend for this platform.
func NewManager() (*Manager, error) {
	// Prefer the native security command on macOS
	if runtime.GOOS == "darwin" {
		if b, err := newSecurityBackend(); err == nil {
			return &Manager{backend: b}, nil
		}
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{backend: ringBackend{ring: ring}}, nil
}

// GetManager returns the shared manager, creating it on first use. A failed
// initialization is retried on the next call rather than cached.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// MustGetManager is GetManager that panics on initialization failure.
func MustGetManager() *Manager {
	m, err := GetManager()
	if err != nil {
		panic(err)
	}
	return m
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Keychain first, pass(1) as fallback (brew install pass)
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	default:
		return nil, errors.New("secure storage not supported on this OS (macOS/Windows only)")
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// SaveSessionToken stores the bearer token.
func (m *Manager) SaveSessionToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Set(KeySessionToken, token)
}

// LoadSessionToken retrieves the bearer token.
func (m *Manager) LoadSessionToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, err := m.backend.Get(KeySessionToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New("empty session token")
	}
	return token, nil
}

// SaveSessionState stores the serialized session.
func (m *Manager) SaveSessionState(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Set(KeySessionState, string(data))
}

// LoadSessionState retrieves the serialized session.
func (m *Manager) LoadSessionState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := m.backend.Get(KeySessionState)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// ClearSession removes the token and state. Missing entries are not errors.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.backend.Delete(KeySessionToken)
	_ = m.backend.Delete(KeySessionState)
	return nil
}
