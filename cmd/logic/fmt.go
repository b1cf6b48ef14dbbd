package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
)

func fmtCmd(cfg *Config) *cobra.Command {
	var (
		color bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "fmt [flags] file...",
		Short: "Print the formatted projection of programs",
		Example: `  # Print a program as text
  logic fmt program.logic

  # Print with terminal colours
  logic fmt --color program.logic`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			config, err := loadConfig(ctx, cfg)
			if err != nil {
				return err
			}
			theme := config.ThemeOrDefault()
			stdout := ioctx.StdoutFromContext(ctx)

			for _, path := range args {
				program, err := readProgram(path)
				if err != nil {
					return err
				}
				p := logic.FormatWithOptions(program, config.FormatOptions())

				out := p.String()
				if color {
					out = theme.Render(p, logic.Range{})
				}
				if width > 0 {
					out = ansi.Hardwrap(out, width, true)
				}
				if len(args) > 1 {
					fmt.Fprintf(stdout, "# %s\n", path)
				}
				fmt.Fprint(stdout, out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&color, "color", isTerminal(os.Stdout), "Render with theme colours")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap lines wider than this many columns")

	return cmd
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
