package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/edouard/telewire/internal/config"
	"github.com/edouard/telewire/telegram"
)

// Replaceable for testing error paths.
var (
	configSave = config.Save
	osStat     = os.Stat
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *InitCmd) Run(e *env) error {
	path := e.cli.Config
	if !c.Force {
		if _, err := osStat(path); err == nil {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("init: %w", err)
		}
	}
	if err := configSave(config.Default(), path); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Fprintf(e.stdout, "Wrote %s. Put BOT_TOKEN in %s or the environment.\n", path, e.cli.Env)
	return nil
}

type MeCmd struct{}

func (c *MeCmd) Run(e *env) error {
	client, _, err := newClient(e.cli)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	me, err := client.GetMe(ctx)
	if err != nil {
		return err
	}
	return printJSON(e, me)
}

type CallCmd struct {
	Method string            `arg:"" help:"Bot API method name, e.g. sendMessage."`
	Params []string          `arg:"" optional:"" help:"Parameters as key=string or key:=json."`
	File   map[string]string `help:"Upload a local file as name=path; reference it as attach://name." short:"f"`
}

func (c *CallCmd) Run(e *env) error {
	client, cfg, err := newClient(e.cli)
	if err != nil {
		return err
	}

	req := telegram.NewRequest(c.Method)
	for _, p := range c.Params {
		key, value, err := parseParam(p)
		if err != nil {
			return err
		}
		req.Set(key, value)
	}
	if len(c.File) > 0 {
		req.Files = telegram.NewAttachments(cfg.UploadRoot)
		for _, name := range slices.Sorted(maps.Keys(c.File)) {
			if _, err := req.Files.AttachAs(name, c.File[name]); err != nil {
				return err
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := client.Do(ctx, req)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, result, "", "  "); err != nil {
		return fmt.Errorf("call: format result: %w", err)
	}
	fmt.Fprintln(e.stdout, out.String())
	return nil
}

// parseParam splits key=value (a string) or key:=value (raw JSON).
func parseParam(arg string) (string, any, error) {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 {
		return "", nil, fmt.Errorf("param %q: want key=value or key:=json", arg)
	}
	key, value := arg[:eq], arg[eq+1:]
	if !strings.HasSuffix(key, ":") {
		return key, value, nil
	}
	key = strings.TrimSuffix(key, ":")
	if key == "" {
		return "", nil, fmt.Errorf("param %q: empty key", arg)
	}
	if !json.Valid([]byte(value)) {
		return "", nil, fmt.Errorf("param %q: invalid JSON", key)
	}
	return key, json.RawMessage(value), nil
}

func newClient(cli *CLI) (*telegram.Client, *config.Config, error) {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(cli.Env); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	client, err := telegram.NewClient(cfg.Token, cfg.ClientOptions()...)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// loadConfig falls back to the defaults when the config file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := osStat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func printJSON(e *env, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("format result: %w", err)
	}
	fmt.Fprintln(e.stdout, string(data))
	return nil
}
