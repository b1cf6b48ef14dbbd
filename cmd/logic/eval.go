package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
)

func evalCmd(cfg *Config) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "eval [flags] file",
		Short: "Evaluate a program and print its globals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := readProgram(args[0])
			if err != nil {
				return err
			}

			ev, err := logic.Evaluate(ctx, program, nil)
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}

			stdout := ioctx.StdoutFromContext(ctx)
			for _, name := range ev.Globals() {
				v, _ := ev.Global(name)
				fmt.Fprintf(stdout, "%s: %s = %s\n", name, v.Type, v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print program output")

	return cmd
}
