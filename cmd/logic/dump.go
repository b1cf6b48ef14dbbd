package main

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
)

func dumpCmd(cfg *Config) *cobra.Command {
	var (
		id       string
		elements bool
	)

	cmd := &cobra.Command{
		Use:   "dump [flags] file",
		Short: "Print the syntax tree of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := readProgram(args[0])
			if err != nil {
				return err
			}

			var n logic.Node = program
			if id != "" {
				found, ok := logic.Find(program, logic.ID(id))
				if !ok {
					return fmt.Errorf("no node %s in %s", id, args[0])
				}
				n = found
			}

			stdout := ioctx.StdoutFromContext(ctx)
			if !elements {
				_, err := pretty.Fprintf(stdout, "%# v\n", n)
				return err
			}

			p := logic.Format(program)
			r, _ := p.ElementRange(n.NodeID())
			for i := r.Start; i < r.End; i++ {
				e := p.Elements[i]
				fmt.Fprintf(stdout, "%4d %-9s %-11s %q %s\n", i, e.Kind, e.Style, e.Text, e.NodeID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "node", "", "Only dump the node with this ID")
	cmd.Flags().BoolVar(&elements, "elements", false, "Dump formatted elements instead of the tree")

	return cmd
}
