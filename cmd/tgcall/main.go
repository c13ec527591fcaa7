package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/edouard/telewire/telegram"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

// CLI is the command tree.
type CLI struct {
	Config  string `help:"Path to config.json." default:"config.json" type:"path"`
	Env     string `help:"Path to a dotenv file with BOT_TOKEN." default:".env" name:"env-file"`
	Verbose bool   `help:"Log request attempts to stderr." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version."`
	Init    InitCmd    `cmd:"" help:"Write a default config file."`
	Me      MeCmd      `cmd:"" help:"Call getMe and print the bot user."`
	Call    CallCmd    `cmd:"" help:"Call any Bot API method."`
}

// env carries the writers and global flags into command Run methods.
type env struct {
	stdout io.Writer
	stderr io.Writer
	cli    *CLI
}

// exitCode is raised by the kong exit hook and recovered in run.
type exitCode int

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) (code int) {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tgcall"),
		kong.Description("Call the Telegram Bot API from the command line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	kctx, err := parser.Parse(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cli.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := kctx.Run(&env{stdout: stdout, stderr: stderr, cli: cli}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		// API rejections are told apart from local failures.
		var apiErr *telegram.Error
		if errors.As(err, &apiErr) {
			return 2
		}
		return 1
	}
	return 0
}

type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	fmt.Fprintln(e.stdout, Version)
	return nil
}
