package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edouard/telewire/telegram"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

// noProcessEnv hides the real environment from ApplyEnv.
func noProcessEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = orig })
}

func TestDuration_JSON(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{`"30s"`, 30 * time.Second, false},
		{`"1m30s"`, 90 * time.Second, false},
		{`"250ms"`, 250 * time.Millisecond, false},
		{`"soon"`, 0, true},
		{`30`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Duration != tt.want {
				t.Fatalf("got %v, want %v", d.Duration, tt.want)
			}
			out, err := d.MarshalJSON()
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Duration
			if err := back.UnmarshalJSON(out); err != nil || back != d {
				t.Fatalf("round trip = %v, %v", back, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeFile(t, "config.json", `{
  "base_url": "http://localhost:8081",
  "timeouts": {"read": "45s"},
  "attempts": 5
}`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "http://localhost:8081" {
			t.Fatalf("base_url = %q", cfg.BaseURL)
		}
		if cfg.Timeouts.Read.Duration != 45*time.Second {
			t.Fatalf("read = %v, want 45s", cfg.Timeouts.Read.Duration)
		}
		if cfg.Timeouts.Total.Duration != telegram.DefaultTimeouts.Total {
			t.Fatalf("total = %v, want default", cfg.Timeouts.Total.Duration)
		}
		if cfg.Attempts != 5 || cfg.Backoff.Duration != telegram.DefaultBackoff {
			t.Fatalf("attempts = %d, backoff = %v", cfg.Attempts, cfg.Backoff.Duration)
		}
	})

	t.Run("token in file ignored", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "config.json", `{"Token": "123:ABC"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Token != "" {
			t.Fatalf("token = %q, want empty", cfg.Token)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := Load(writeFile(t, "config.json", "{invalid}")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		if _, err := Load(writeFile(t, "config.json", `{"backoff": "later"}`)); err == nil {
			t.Fatal("expected error for invalid duration, got nil")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("dotenv file", func(t *testing.T) {
		noProcessEnv(t, nil)
		path := writeFile(t, ".env", "BOT_TOKEN=111:file\nBOT_API_URL=http://bot-api:8081\n")

		cfg := Default()
		if err := cfg.ApplyEnv(path); err != nil {
			t.Fatalf("ApplyEnv: %v", err)
		}
		if cfg.Token != "111:file" || cfg.BaseURL != "http://bot-api:8081" {
			t.Fatalf("cfg = %+v", cfg)
		}
	})

	t.Run("process env wins", func(t *testing.T) {
		noProcessEnv(t, map[string]string{EnvToken: "222:proc"})
		path := writeFile(t, ".env", "BOT_TOKEN=111:file\n")

		cfg := Default()
		if err := cfg.ApplyEnv(path); err != nil {
			t.Fatalf("ApplyEnv: %v", err)
		}
		if cfg.Token != "222:proc" {
			t.Fatalf("token = %q, want 222:proc", cfg.Token)
		}
		if cfg.BaseURL != telegram.DefaultBaseURL {
			t.Fatalf("base_url = %q, want default", cfg.BaseURL)
		}
	})

	t.Run("missing dotenv file", func(t *testing.T) {
		noProcessEnv(t, map[string]string{EnvToken: "333:proc"})

		cfg := Default()
		if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Fatalf("ApplyEnv: %v", err)
		}
		if cfg.Token != "333:proc" {
			t.Fatalf("token = %q", cfg.Token)
		}
	})

	t.Run("read error", func(t *testing.T) {
		noProcessEnv(t, nil)
		orig := readDotenv
		defer func() { readDotenv = orig }()
		readDotenv = func(string) (map[string]string, error) { return nil, errors.New("permission denied") }

		if err := Default().ApplyEnv(".env"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Token = "123:ABC"
		return cfg
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing token", func(c *Config) { c.Token = "" }, "Token"},
		{"bad url", func(c *Config) { c.BaseURL = "localhost" }, "BaseURL"},
		{"zero attempts", func(c *Config) { c.Attempts = 0 }, "Attempts"},
		{"negative backoff", func(c *Config) { c.Backoff = Duration{-time.Second} }, "backoff"},
		{"negative read", func(c *Config) { c.Timeouts.Read = Duration{-time.Second} }, "timeouts.read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := Default()
	cfg.Token = "123:ABC"
	cfg.BaseURL = "http://localhost:8081"
	if _, err := telegram.NewClient(cfg.Token, cfg.ClientOptions()...); err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	cfg.Attempts = 0
	if _, err := telegram.NewClient(cfg.Token, cfg.ClientOptions()...); err == nil {
		t.Fatal("expected NewClient to reject zero attempts")
	}
}

func TestSave(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.json")
		original := Default()
		original.UploadRoot = "/srv/uploads"
		original.Token = "123:ABC"

		if err := Save(original, path); err != nil {
			t.Fatalf("save: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if strings.Contains(string(data), "123:ABC") {
			t.Fatal("token written to config file")
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if loaded.UploadRoot != "/srv/uploads" || loaded.Timeouts != original.Timeouts || loaded.Backoff != original.Backoff {
			t.Fatalf("loaded = %+v, want %+v", loaded, original)
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		original := jsonMarshalIndent
		defer func() { jsonMarshalIndent = original }()
		jsonMarshalIndent = func(v any, prefix, indent string) ([]byte, error) {
			return nil, errors.New("marshal failure")
		}
		if err := Save(Default(), filepath.Join(t.TempDir(), "config.json")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("atomic write error", func(t *testing.T) {
		original := atomicWrite
		defer func() { atomicWrite = original }()
		atomicWrite = func(path string, data []byte, perm os.FileMode) error {
			return errors.New("write failure")
		}
		if err := Save(Default(), filepath.Join(t.TempDir(), "config.json")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
