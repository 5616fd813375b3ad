// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the OS
// keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"kavio/cli/internal/xdg"
)

// Defaults used when neither the config file nor the environment provides a
// value. The chatbot runs on its own host, separate from the CRM API.
const (
	DefaultAPIBaseURL     = "http://localhost:3001"
	DefaultChatbotBaseURL = "https://chat-bot-production-0ee9.up.railway.app"
)

// Environment overrides, applied on top of the config file.
const (
	EnvAPIBaseURL     = "KAVIO_API_URL"
	EnvChatbotBaseURL = "KAVIO_CHATBOT_URL"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIBaseURL     string `json:"api_base_url"`
	ChatbotBaseURL string `json:"chatbot_base_url"`
	NoColor        bool   `json:"no_color"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults. Environment
// variables override whatever the file says, read once per call.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return c, err
		}
	} else if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	applyDefaults(&c)
	applyEnv(&c)
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func applyDefaults(c *Config) {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.ChatbotBaseURL == "" {
		c.ChatbotBaseURL = DefaultChatbotBaseURL
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvChatbotBaseURL); v != "" {
		c.ChatbotBaseURL = v
	}
}
