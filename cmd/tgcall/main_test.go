package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edouard/telewire/internal/config"
)

func TestRun_version(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"tgcall", "version"}, &stdout, io.Discard)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if got := strings.TrimSpace(stdout.String()); got != Version {
		t.Fatalf("expected %q, got %q", Version, got)
	}
}

func TestRun_help(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"tgcall", "--help"}, &stdout, io.Discard)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "call") {
		t.Fatalf("help output missing commands: %s", stdout.String())
	}
}

func TestRun_badArgs(t *testing.T) {
	tests := [][]string{
		{"tgcall"},
		{"tgcall", "bogus"},
		{"tgcall", "call"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if code := run(args, io.Discard, io.Discard); code != 1 {
				t.Fatalf("expected exit code 1, got %d", code)
			}
		})
	}
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		arg     string
		key     string
		want    string
		wantErr bool
	}{
		{"text=hello world", "text", "hello world", false},
		{"text=", "text", "", false},
		{"url=https://x.test/?a=b", "url", "https://x.test/?a=b", false},
		{"chat_id:=42", "chat_id", "42", false},
		{`reply_markup:={"inline_keyboard":[]}`, "reply_markup", `{"inline_keyboard":[]}`, false},
		{"chat_id:=nope", "", "", true},
		{"novalue", "", "", true},
		{"=x", "", "", true},
		{":=1", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			key, value, err := parseParam(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q=%v", key, value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tt.key {
				t.Fatalf("key = %q, want %q", key, tt.key)
			}
			var got string
			switch v := value.(type) {
			case string:
				got = v
			case json.RawMessage:
				got = string(v)
			default:
				t.Fatalf("value type = %T", value)
			}
			if got != tt.want {
				t.Fatalf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	var stdout bytes.Buffer
	if code := run([]string{"tgcall", "--config", path, "init"}, &stdout, io.Discard); code != 0 {
		t.Fatalf("init exit code = %d", code)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Attempts != config.Default().Attempts {
		t.Fatalf("attempts = %d", cfg.Attempts)
	}

	var stderr bytes.Buffer
	if code := run([]string{"tgcall", "--config", path, "init"}, io.Discard, &stderr); code != 1 {
		t.Fatalf("second init exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if code := run([]string{"tgcall", "--config", path, "init", "--force"}, io.Discard, io.Discard); code != 0 {
		t.Fatalf("forced init exit code = %d", code)
	}
}

func TestRun_init_saveError(t *testing.T) {
	orig := configSave
	defer func() { configSave = orig }()
	configSave = func(*config.Config, string) error { return errors.New("disk full") }

	path := filepath.Join(t.TempDir(), "config.json")
	var stderr bytes.Buffer
	if code := run([]string{"tgcall", "--config", path, "init"}, io.Discard, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "disk full") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

// botServer points BOT_API_URL at h and sets a token.
func botServer(t *testing.T, h http.HandlerFunc) []string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("BOT_TOKEN", "123:ABC")
	t.Setenv("BOT_API_URL", srv.URL)
	dir := t.TempDir()
	return []string{"tgcall", "--config", filepath.Join(dir, "config.json"), "--env-file", filepath.Join(dir, ".env")}
}

func TestRun_me(t *testing.T) {
	args := botServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot123:ABC/getMe" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Echo","username":"echo_bot"}}`)
	})

	var stdout bytes.Buffer
	if code := run(append(args, "me"), &stdout, io.Discard); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), `"username": "echo_bot"`) {
		t.Fatalf("stdout = %s", stdout.String())
	}
}

func TestRun_me_missingToken(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOT_TOKEN", "")
	var stderr bytes.Buffer
	code := run([]string{"tgcall", "--config", filepath.Join(dir, "config.json"), "--env-file", filepath.Join(dir, ".env"), "me"}, io.Discard, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Token") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRun_call(t *testing.T) {
	args := botServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if want := `{"chat_id":42,"text":"hi there","method":"sendMessage"}`; string(body) != want {
			t.Errorf("body = %s, want %s", body, want)
		}
		io.WriteString(w, `{"ok":true,"result":{"message_id":5,"date":1,"chat":{"id":42,"type":"private"},"text":"hi there"}}`)
	})

	var stdout bytes.Buffer
	code := run(append(args, "call", "sendMessage", "chat_id:=42", "text=hi there"), &stdout, io.Discard)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), `"message_id": 5`) {
		t.Fatalf("stdout = %s", stdout.String())
	}
}

func TestRun_call_apiError(t *testing.T) {
	args := botServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	})

	var stderr bytes.Buffer
	if code := run(append(args, "call", "getChat", "chat_id:=1"), io.Discard, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "chat not found") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRun_call_upload(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(doc, []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}
	args := botServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Fatalf("content type: %v", err)
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		seen := map[string]string{}
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			seen[part.FormName()] = string(data)
		}
		if seen["document"] != "attach://doc" || seen["doc"] != "notes" || seen["chat_id"] != "7" {
			t.Errorf("parts = %v", seen)
		}
		io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":7,"type":"private"}}}`)
	})

	code := run(append(args, "call", "sendDocument", "chat_id:=7", "document=attach://doc", "--file", "doc="+doc), io.Discard, io.Discard)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
}

// TestMain_subprocess tests the main() function which calls os.Exit.
func TestMain_subprocess(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"version", []string{"version"}, 0, Version},
		{"no args", nil, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], append([]string{"-test.run=TestHelperMain", "--"}, tt.args...)...)
			cmd.Env = append(os.Environ(), "TGCALL_TEST_MAIN=1")
			out, err := cmd.CombinedOutput()

			exitCode := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("unexpected error: %v", err)
				}
				exitCode = exitErr.ExitCode()
			}
			if exitCode != tt.wantCode {
				t.Fatalf("exit code = %d, want %d; output: %s", exitCode, tt.wantCode, out)
			}
			if tt.wantOut != "" && !strings.Contains(string(out), tt.wantOut) {
				t.Fatalf("output %q does not contain %q", out, tt.wantOut)
			}
		})
	}
}

// TestHelperMain is called by TestMain_subprocess in a subprocess.
func TestHelperMain(t *testing.T) {
	if os.Getenv("TGCALL_TEST_MAIN") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			os.Args = append([]string{"tgcall"}, args[i+1:]...)
			break
		}
	}
	main()
}
