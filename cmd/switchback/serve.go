package main

import (
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/switchback/ranger"
)

func serveCmd() *cobra.Command {
	var (
		env    string
		pages  string
		port   string
		routes string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the web server, configured by environment variables or a .env file.
Flags override their environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ranger.NewConfig()
			cfg.RoutesFile = routes
			if pages != "" {
				cfg.PagesDir = pages
			}

			if port != "" {
				if port[0] != ':' {
					port = ":" + port
				}
				cfg.Port = port
			}

			opts := []ranger.RangerOption{
				ranger.WithConfig(cfg),
				ranger.WithContext(cmd.Context()),
			}
			if env != "" {
				opts = append(opts, ranger.WithEnv(env))
			}

			rng, err := ranger.New(opts...)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	routesFlag(cmd, &routes)
	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment, e.g. DEVELOPMENT")
	cmd.Flags().StringVar(&pages, "pages", "", "Directory of page templates and markdown")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on")

	return cmd
}
