package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	disabledStyle = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

func suggestCmd(cfg *Config) *cobra.Command {
	var (
		id      string
		line    int
		element int
		prefix  string
	)

	cmd := &cobra.Command{
		Use:   "suggest [flags] file",
		Short: "List the suggestions offered for a node",
		Example: `  # Suggestions for the first node on line 3
  logic suggest --line 3 program.logic

  # Filtered suggestions for a node
  logic suggest --node 0b7c... --prefix ag program.logic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			config, err := loadConfig(ctx, cfg)
			if err != nil {
				return err
			}
			program, err := readProgram(args[0])
			if err != nil {
				return err
			}

			session := logic.NewSession(ctx, program, logic.SessionOptions{
				Format:  config.FormatOptions(),
				Suggest: config.SuggestOptions(),
			})
			switch {
			case id != "":
				err = session.Activate(logic.ID(id))
			case element >= 0:
				err = session.ActivateElement(element)
			default:
				err = session.ActivateLine(line)
			}
			if err != nil {
				return err
			}
			if err := session.SetPrefix(prefix); err != nil {
				return err
			}

			stdout := ioctx.StdoutFromContext(ctx)
			theme := config.ThemeOrDefault()
			fmt.Fprintln(stdout, theme.Render(session.Projection(), session.SelectedRange()))

			w := session.Window()
			for _, crumb := range w.Breadcrumbs {
				fmt.Fprintf(stdout, "› %s ", crumb.Title)
			}
			fmt.Fprintln(stdout)

			for i, row := range w.Rows {
				if row.IsHeader() {
					fmt.Fprintln(stdout, headerStyle.Render(row.Header))
					continue
				}
				s := row.Suggestion
				text := "  " + s.Title
				if s.Detail != "" {
					text += "  " + s.Detail
				}
				switch {
				case i == w.Selected:
					text = selectedStyle.Render(text)
				case s.Disabled:
					text = disabledStyle.Render(text)
				}
				fmt.Fprintln(stdout, text)
			}
			if w.Documentation != "" {
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, w.Documentation)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "node", "", "ID of the node to activate")
	cmd.Flags().IntVar(&line, "line", 0, "Activate the first node on this line")
	cmd.Flags().IntVar(&element, "element", -1, "Activate the node drawn by this element")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Filter text")

	return cmd
}
