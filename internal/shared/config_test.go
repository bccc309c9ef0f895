package shared

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if !slices.Equal(config.Source.Categories, []string{"party", "hiphop", "pop"}) {
			t.Errorf("expected default categories [party hiphop pop], got %v", config.Source.Categories)
		}

		if config.Source.Country != "US" {
			t.Errorf("expected country US, got %s", config.Source.Country)
		}

		if config.Source.PageSize != 50 {
			t.Errorf("expected page size 50, got %d", config.Source.PageSize)
		}

		if config.Report.Rows != 100 {
			t.Errorf("expected 100 report rows, got %d", config.Report.Rows)
		}

		if spotify := config.Credentials.Spotify; spotify.ClientID != "" || spotify.ClientSecret != "" {
			t.Errorf("expected empty default credentials, got %+v", spotify)
		}

		if config.Report.Format != "xlsx" {
			t.Errorf("expected xlsx format, got %s", config.Report.Format)
		}

		if config.Run.OnError != OnErrorAbort {
			t.Errorf("expected on_error abort, got %s", config.Run.OnError)
		}

		if config.Database.Enabled {
			t.Error("expected run history to be disabled by default")
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[source]
categories = ["chill"]
http_timeout = "15s"

[report]
rows = 25
format = "csv"

[run]
on_error = "continue"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if !slices.Equal(config.Source.Categories, []string{"chill"}) {
			t.Errorf("expected categories [chill], got %v", config.Source.Categories)
		}

		if config.Source.Country != "US" {
			t.Errorf("expected missing country to keep default US, got %s", config.Source.Country)
		}

		if config.Report.Rows != 25 {
			t.Errorf("expected 25 rows, got %d", config.Report.Rows)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		timeout, err := config.Source.Timeout()
		if err != nil {
			t.Fatalf("unexpected timeout error: %v", err)
		}
		if timeout != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", timeout)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Source.Categories = []string{"rock", "jazz"}
		config.Report.Rows = 10

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}

		if !slices.Equal(loaded.Source.Categories, []string{"rock", "jazz"}) {
			t.Errorf("expected saved categories, got %v", loaded.Source.Categories)
		}
		if loaded.Report.Rows != 10 {
			t.Errorf("expected 10 rows, got %d", loaded.Report.Rows)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientSecret = "file_secret"
		config.ApplyEnv()

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected client id from env, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "file_secret" {
			t.Errorf("empty env var should not override secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tc := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no categories", mutate: func(c *Config) { c.Source.Categories = nil }},
		{name: "empty category", mutate: func(c *Config) { c.Source.Categories = []string{"pop", ""} }},
		{name: "page size too large", mutate: func(c *Config) { c.Source.PageSize = 51 }},
		{name: "track page size zero", mutate: func(c *Config) { c.Source.TrackPageSize = 0 }},
		{name: "negative rate", mutate: func(c *Config) { c.Source.RequestsPerSecond = -1 }},
		{name: "bad timeout", mutate: func(c *Config) { c.Source.HTTPTimeout = "soon" }},
		{name: "zero rows", mutate: func(c *Config) { c.Report.Rows = 0 }},
		{name: "unknown format", mutate: func(c *Config) { c.Report.Format = "pdf" }},
		{name: "unknown policy", mutate: func(c *Config) { c.Run.OnError = "retry" }},
		{name: "history without path", mutate: func(c *Config) { c.Database.Enabled = true; c.Database.Path = "" }},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
