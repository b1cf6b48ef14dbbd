package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
	"github.com/vito/logic/pkg/server"
)

func serveCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve an editing session over JSON-RPC on stdio",
		Long: `Serve reads line-delimited JSON-RPC 2.0 requests from stdin and writes
responses to stdout. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			config, err := loadConfig(ctx, cfg)
			if err != nil {
				return err
			}

			ioctx.LoggerFromContext(ctx).InfoContext(ctx, "starting editor server")
			return server.Serve(ctx, os.Stdin, stdoutCloser{}, logic.SessionOptions{
				Format:  config.FormatOptions(),
				Suggest: config.SuggestOptions(),
			})
		},
	}
}

type stdoutCloser struct{}

func (stdoutCloser) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdoutCloser) Close() error {
	return os.Stdout.Close()
}
