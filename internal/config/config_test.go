package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvChatbotBaseURL, "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want default %q", c.APIBaseURL, DefaultAPIBaseURL)
	}
	if c.ChatbotBaseURL != DefaultChatbotBaseURL {
		t.Errorf("ChatbotBaseURL = %q, want default %q", c.ChatbotBaseURL, DefaultChatbotBaseURL)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvChatbotBaseURL, "")

	want := Config{APIBaseURL: "https://crm.example.com", ChatbotBaseURL: "https://bot.example.com", NoColor: true}
	if err := Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// config must not be world-readable
	info, err := os.Stat(filepath.Join(dir, "kavio", "config.json"))
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := Save(Config{APIBaseURL: "https://from-file.example.com"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Setenv(EnvAPIBaseURL, "https://from-env.example.com")
	t.Setenv(EnvChatbotBaseURL, "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.APIBaseURL != "https://from-env.example.com" {
		t.Errorf("APIBaseURL = %q, env should win over the file", c.APIBaseURL)
	}
}
