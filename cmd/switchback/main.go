// Command switchback serves a switchback app and inspects its route table.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/route"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "switchback",
		Short: "Route table driven page navigation",
		Long: `switchback serves pages selected by a nested route table.

Guards attached to routes allow, redirect or deny each navigation
before any content renders. Requests carrying the X-Requested-With
header receive the page fragment alone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		matchCmd(),
		routesCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadTable compiles the route table file at name.
func loadTable(name string) (*route.Table, error) {
	routes, err := route.LoadFile(name, guard.Builtins("/"))
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", name, err)
	}

	return route.NewTable(routes)
}

// routesFlag registers the --routes flag, defaulting to ROUTES_FILE.
func routesFlag(cmd *cobra.Command, dst *string) {
	def := os.Getenv("ROUTES_FILE")
	if def == "" {
		def = "routes.yaml"
	}

	cmd.Flags().StringVarP(dst, "routes", "r", def, "YAML route table file")
}
