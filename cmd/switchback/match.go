package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/route"
)

var errNoMatch = errors.New("no route matches")

func matchCmd() *cobra.Command {
	var (
		guards    bool
		loginPath string
		routes    string
		signedIn  bool
	)

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Show which routes a path activates",
		Long: `Match a path against the route table and print the matched chain and its parameters.

With --guards, guards run as they would for a request,
printing every redirect followed before the final outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(routes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			target := args[0]
			if !guards {
				m := tbl.Match(target)
				if m == nil {
					return fmt.Errorf("%w %s", errNoMatch, target)
				}

				printMatch(out, m)
				return nil
			}

			res := guard.NewResolver(
				tbl,
				guard.WithLogger(logger.Discard()),
				guard.WithLoginPath(loginPath),
			)

			caps := route.Capabilities{
				Auth: route.AuthenticatorFunc(func(context.Context) (bool, error) { return signedIn, nil }),
			}

			resolution, err := res.Resolve(cmd.Context(), target, caps)
			for _, hop := range resolution.Redirects {
				fmt.Fprintf(out, "%s %s\n", color.YellowString("redirect"), hop)
			}

			if err != nil {
				return err
			}

			if !resolution.Found() {
				return fmt.Errorf("%w %s", errNoMatch, resolution.Target)
			}

			printMatch(out, resolution.Match)
			fmt.Fprintf(out, "outcome:   %s\n", outcome(resolution.Outcome))

			return nil
		},
	}

	routesFlag(cmd, &routes)
	cmd.Flags().BoolVarP(&guards, "guards", "g", false, "Run guards and follow their redirects")
	cmd.Flags().StringVar(&loginPath, "login", "/login", "Where rejected navigations are sent")
	cmd.Flags().BoolVar(&signedIn, "signed-in", false, "Run guards as a signed in party")

	return cmd
}

func printMatch(out io.Writer, m *route.Match) {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.Key+"="+p.Value)
	}

	fmt.Fprintf(out, "path:      %s\n", m.URL())
	fmt.Fprintf(out, "route:     %s\n", m.Pattern())
	fmt.Fprintf(out, "name:      %s\n", m.Name())
	fmt.Fprintf(out, "params:    %s\n", strings.Join(params, " "))
}

func outcome(o route.Outcome) string {
	switch {
	case o.IsAllow():
		return color.GreenString(o.String())
	case o.IsDeny():
		return color.RedString(o.String())
	default:
		return color.YellowString(o.String())
	}
}
