package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/edouard/telewire/internal/platform"
	"github.com/edouard/telewire/telegram"
)

// configFilePerm is the file permission for config.json (owner rw, group/others read).
const configFilePerm = 0644

// Environment variables read by ApplyEnv. The token is never stored in the
// config file.
const (
	EnvToken   = "BOT_TOKEN"
	EnvBaseURL = "BOT_API_URL"
)

var validate = validator.New()

// Replaceable for testing error paths.
var (
	atomicWrite       = platform.WriteFileAtomic
	jsonMarshalIndent = func(v any, prefix, indent string) ([]byte, error) { return json.MarshalIndent(v, prefix, indent) }
	readDotenv        = func(path string) (map[string]string, error) { return godotenv.Read(path) }
	lookupEnv         = os.LookupEnv
)

// Duration wraps time.Duration with custom JSON marshal/unmarshal for string durations.
type Duration struct {
	time.Duration
}

// MarshalJSON encodes the duration as a JSON string (e.g., "30s").
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// UnmarshalJSON decodes a JSON string into a Duration.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// Timeouts mirrors telegram.Timeouts with string durations.
type Timeouts struct {
	Connect Duration `json:"connect"`
	Read    Duration `json:"read"`
	Total   Duration `json:"total"`
}

// Config holds the CLI configuration.
type Config struct {
	BaseURL    string   `json:"base_url" validate:"required,url"`
	Timeouts   Timeouts `json:"timeouts"`
	Attempts   int      `json:"attempts" validate:"min=1"`
	Backoff    Duration `json:"backoff"`
	UploadRoot string   `json:"upload_root,omitempty"`

	// Token comes from the environment only.
	Token string `json:"-" validate:"required"`
}

// Default returns the configuration written by "tgcall init".
func Default() *Config {
	return &Config{
		BaseURL: telegram.DefaultBaseURL,
		Timeouts: Timeouts{
			Connect: Duration{telegram.DefaultTimeouts.Connect},
			Read:    Duration{telegram.DefaultTimeouts.Read},
			Total:   Duration{telegram.DefaultTimeouts.Total},
		},
		Attempts: telegram.DefaultAttempts,
		Backoff:  Duration{telegram.DefaultBackoff},
	}
}

// Load reads a config.json file on top of the defaults. Members absent from
// the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: load: unmarshal: %w", err)
	}
	slog.Info("config loaded", "component", "config", "operation", "load", "path", path)
	return cfg, nil
}

// ApplyEnv overlays BOT_TOKEN and BOT_API_URL. Process variables win over
// the dotenv file; a missing dotenv file is not an error.
func (c *Config) ApplyEnv(dotenvPath string) error {
	var fileEnv map[string]string
	if dotenvPath != "" {
		var err error
		fileEnv, err = readDotenv(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: env: %w", err)
		}
	}
	get := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}

	if v, ok := get(EnvToken); ok {
		c.Token = v
	}
	if v, ok := get(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	return nil
}

// Validate checks the configuration before a client is built from it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	durations := []struct {
		name string
		d    Duration
	}{
		{"timeouts.connect", c.Timeouts.Connect},
		{"timeouts.read", c.Timeouts.Read},
		{"timeouts.total", c.Timeouts.Total},
		{"backoff", c.Backoff},
	}
	for _, f := range durations {
		if f.d.Duration < 0 {
			return fmt.Errorf("config: validate: %s: negative duration %s", f.name, f.d.Duration)
		}
	}
	return nil
}

// ClientOptions converts the configuration into telegram client options.
func (c *Config) ClientOptions() []telegram.Option {
	return []telegram.Option{
		telegram.WithBaseURL(c.BaseURL),
		telegram.WithTimeouts(telegram.Timeouts{
			Connect: c.Timeouts.Connect.Duration,
			Read:    c.Timeouts.Read.Duration,
			Total:   c.Timeouts.Total.Duration,
		}),
		telegram.WithAttempts(c.Attempts),
		telegram.WithBackoff(c.Backoff.Duration),
	}
}

// Save writes the config struct to the given path atomically with JSON formatting.
func Save(cfg *Config, path string) error {
	data, err := jsonMarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: save: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := atomicWrite(path, data, configFilePerm); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	slog.Info("config saved", "component", "config", "operation", "save", "path", path)
	return nil
}
