package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
	"golang.org/x/sync/errgroup"
)

func checkCmd(cfg *Config) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [flags] file...",
		Short: "Type check programs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stdout := ioctx.StdoutFromContext(ctx)

			results, err := checkFiles(ctx, args, jobs)
			if err != nil {
				return err
			}

			count := 0
			for i, path := range args {
				for _, line := range results[i] {
					fmt.Fprintf(stdout, "%s: %s\n", path, line)
				}
				count += len(results[i])
			}
			if count > 0 {
				return fmt.Errorf("%d type errors", count)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Number of files to check at once (0 for no limit)")

	return cmd
}

// checkFiles type checks each file, at most jobs at a time, and returns
// the described errors of each file in argument order. jobs <= 0 means no
// limit.
func checkFiles(ctx context.Context, paths []string, jobs int) ([][]string, error) {
	logger := ioctx.LoggerFromContext(ctx)
	results := make([][]string, len(paths))

	if jobs <= 0 {
		jobs = -1
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, path := range paths {
		eg.Go(func() error {
			program, err := readProgram(path)
			if err != nil {
				return err
			}
			tc := logic.Check(ctx, program)
			for _, err := range tc.Errors() {
				results[i] = append(results[i], describeError(program, err))
			}
			logger.DebugContext(ctx, "checked", "path", path, "errors", len(tc.Errors()))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// describeError prefixes a type error with the source of its node.
func describeError(program *logic.Program, err *logic.TypeError) string {
	n, ok := logic.Find(program, err.NodeID)
	if !ok {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", logic.Source(n), err.Err)
}
