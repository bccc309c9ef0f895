package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"
)

// ReportFormats lists the accepted values for [ReportConfig.Format].
var ReportFormats = []string{"xlsx", "csv", "md"}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Source      SourceConfig      `toml:"source"`
	Report      ReportConfig      `toml:"report"`
	Run         RunConfig         `toml:"run"`
	Database    DatabaseConfig    `toml:"database"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API app credentials for the client-credentials flow.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Map returns the credentials in the shape expected by services.NewSpotifySource.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
	}
}

// SourceConfig controls how category playlists are requested.
type SourceConfig struct {
	Categories        []string `toml:"categories"`
	Country           string   `toml:"country"`
	PageSize          int      `toml:"page_size"`
	TrackPageSize     int      `toml:"track_page_size"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	HTTPTimeout       string   `toml:"http_timeout"`
}

// Timeout parses HTTPTimeout. An empty value means no timeout.
func (s SourceConfig) Timeout() (time.Duration, error) {
	if s.HTTPTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: http_timeout %q: %v", ErrInvalidConfig, s.HTTPTimeout, err)
	}
	return d, nil
}

// ReportConfig controls the shape and destination of generated reports.
type ReportConfig struct {
	Rows        int    `toml:"rows"`
	Format      string `toml:"format"`
	OutputDir   string `toml:"output_dir"`
	Incremental bool   `toml:"incremental"`
}

// RunConfig controls orchestration across categories.
type RunConfig struct {
	OnError string `toml:"on_error"`
}

// DatabaseConfig contains run history database settings.
type DatabaseConfig struct {
	Enabled      bool   `toml:"enabled"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first out-of-range setting, wrapped in [ErrInvalidConfig].
func (c *Config) Validate() error {
	if len(c.Source.Categories) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidConfig)
	}
	for _, category := range c.Source.Categories {
		if category == "" {
			return fmt.Errorf("%w: empty category identifier", ErrInvalidConfig)
		}
	}
	if c.Source.PageSize < 1 || c.Source.PageSize > 50 {
		return fmt.Errorf("%w: page_size must be between 1 and 50, got %d", ErrInvalidConfig, c.Source.PageSize)
	}
	if c.Source.TrackPageSize < 1 || c.Source.TrackPageSize > 100 {
		return fmt.Errorf("%w: track_page_size must be between 1 and 100, got %d", ErrInvalidConfig, c.Source.TrackPageSize)
	}
	if c.Source.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Source.Timeout(); err != nil {
		return err
	}
	if c.Report.Rows < 1 {
		return fmt.Errorf("%w: report rows must be positive, got %d", ErrInvalidConfig, c.Report.Rows)
	}
	if !slices.Contains(ReportFormats, c.Report.Format) {
		return fmt.Errorf("%w: report format %q (want one of %v)", ErrInvalidConfig, c.Report.Format, ReportFormats)
	}
	if c.Run.OnError != OnErrorAbort && c.Run.OnError != OnErrorContinue {
		return fmt.Errorf("%w: on_error must be %q or %q, got %q", ErrInvalidConfig, OnErrorAbort, OnErrorContinue, c.Run.OnError)
	}
	if c.Database.Enabled && c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required when history is enabled", ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides Spotify credentials with SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET when set.
func (c *Config) ApplyEnv() {
	if id := os.Getenv("SPOTIFY_CLIENT_ID"); id != "" {
		c.Credentials.Spotify.ClientID = id
	}
	if secret := os.Getenv("SPOTIFY_CLIENT_SECRET"); secret != "" {
		c.Credentials.Spotify.ClientSecret = secret
	}
}
