package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/switchback/route"
)

func routesCmd() *cobra.Command {
	var routes string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(routes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tbl.Walk(func(full string, depth int, r *route.Route) {
				line := strings.Repeat("  ", depth) + full
				if r.Name != "" {
					line += " (" + r.Name + ")"
				}

				if r.Guard != nil {
					line += " [guarded]"
				}

				fmt.Fprintln(out, line)
			})

			return nil
		},
	}

	routesFlag(cmd, &routes)

	return cmd
}
