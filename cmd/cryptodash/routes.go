package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/navigation"
	"github.com/xy-planning-network/cryptodash/view"
)

// loadTable compiles the route table against the client build output found in dir.
func loadTable(dir string) (*router.Table, error) {
	env := cryptodash.EnvVarOrEnv("ENVIRONMENT", cryptodash.Development)
	return router.DefaultTable(view.NewBundle(env, os.DirFS(dir)).Set())
}

func routesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(dir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tNAME\tTITLE\tREDIRECT")
			for _, r := range table.Routes() {
				title, _ := r.Meta.Title()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Path, orDash(r.Name), orDash(title), orDash(r.Redirect))
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding the client build output")

	return cmd
}

func resolveCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print where navigating to path lands",
		Long: `Print where navigating to path lands as JSON,
following route redirects such as the catch-all redirect to "/".
The document title the navigation sets is included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(dir)
			if err != nil {
				return err
			}

			loc, err := navigation.NewNavigator(table).Resolve(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				navigation.Location
				Title string `json:"title"`
			}{loc, navigation.FormatTitle(navigation.AppName, loc.Meta)})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding the client build output")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
