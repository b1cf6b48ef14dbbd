package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
)

// Config holds the global flags.
type Config struct {
	Debug      bool
	ConfigFile string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "logic",
		Short: "Structured editor core for Logic programs",
		Long: `Logic programs are syntax trees stored as JSON. This tool formats,
type checks and evaluates them, lists the suggestions an editor would offer
for a node, and serves an editing session over JSON-RPC.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(cfg.Debug)
			cmd.SetContext(ioctx.LoggerToContext(cmd.Context(), logger))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&cfg.ConfigFile, "config", "c", "", "Path to logic.toml (searched for from the working directory if not specified)")

	rootCmd.AddCommand(
		fmtCmd(&cfg),
		checkCmd(&cfg),
		evalCmd(&cfg),
		suggestCmd(&cfg),
		dumpCmd(&cfg),
		serveCmd(&cfg),
	)

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads --config, or the nearest logic.toml.
func loadConfig(ctx context.Context, cfg *Config) (*logic.Config, error) {
	if cfg.ConfigFile != "" {
		return logic.LoadConfig(cfg.ConfigFile)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, config, err := logic.FindConfig(cwd)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return logic.DefaultConfig(), nil
	}
	ioctx.LoggerFromContext(ctx).DebugContext(ctx, "loaded config", "path", path)
	return config, nil
}

func readProgram(path string) (*logic.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	program, err := logic.DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return program, nil
}
