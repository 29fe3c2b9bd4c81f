package main

import (
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/cryptodash/ranger"
)

func serveCmd() *cobra.Command {
	var maintenance bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the web server until interrupted.

The server is configured through environment variables, optionally set in a .env file.
See the ranger package for the full list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []ranger.RangerOption{ranger.WithContext(cmd.Context())}
			if maintenance {
				opts = append(opts, ranger.WithMaintenanceMode())
			}

			rng, err := ranger.New(opts...)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().BoolVar(&maintenance, "maintenance", false, "Answer every page request with 503 Service Unavailable")

	return cmd
}
