// Package main provides the myshkin command-line interface: every file tool of
// the toolkit exposed as a one-shot subcommand bound to a base directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/toolkit"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// app carries state shared by all subcommands once the root command has
// processed its flags.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	toolkit *toolkit.Toolkit
	out     io.Writer
}

func newApp() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "myshkin",
		Short: "Sandboxed file tools for coding agents",
		Example: `  Show the project tree:
  $ myshkin tree

  Print a file with line numbers:
  $ myshkin read main.go

  Remove lines 10-12:
  $ myshkin remove main.go 10 12

  Apply a diff from stdin:
  $ git diff | myshkin patch -p 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("base-dir", "C", "", "Sandbox root (default: current directory)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ~/.config/myshkin/config.json)")
	rootCmd.PersistentFlags().String("log-level", "", "Set the logging level [trace, debug, info, warn, error]")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}

	rootCmd.AddCommand(
		newTreeCommand(a),
		newListCommand(a),
		newReadCommand(a),
		newInsertCommand(a),
		newRemoveCommand(a),
		newPatchCommand(a),
		newToolsCommand(a),
		newCallCommand(a),
		newDispatchCommand(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	configPath, _ := cmd.Flags().GetString("config")
	var err error
	if configPath != "" {
		a.cfg, err = config.NewLoader().LoadFile(configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		a.cfg.Log.Level = level
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		a.cfg.Log.File = file
	}
	a.log, err = initLogger(a.cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	baseDir, _ := cmd.Flags().GetString("base-dir")
	if baseDir == "" {
		if baseDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	a.toolkit, err = toolkit.New(a.cfg, baseDir, a.log)
	return err
}

// initLogger builds a console logger on stderr, or a JSON logger appending to
// the configured file.
func initLogger(cfg config.LogConfig, stderr io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
