package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/todolist/internal/cli"
	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		cli.PrintHelp(os.Stderr)
	}
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(cli.ExitOK)
		}
		ui.Fail(os.Stderr, err.Error())
		os.Exit(cli.ExitUsage)
	}
	ui.SetTheme(cfg.Theme)
	logger := logging.New(os.Stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTime,
	})
	logger.Debug("config", "files", cfg.ConfigFiles, "file", cfg.File, "theme", cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		os.Exit(cli.ExitUsage)
	}

	code := cli.Run(args, cli.Options{
		Config:      cfg,
		Logger:      logger,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: cli.IsTerminal(os.Stdout),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
