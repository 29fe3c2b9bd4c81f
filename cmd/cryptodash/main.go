package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cryptodash",
		Short: "Serve and inspect the Crypto Dashboard",
		Long: `cryptodash serves the Crypto Dashboard single-page application.

Every page request is a navigation through the dashboard's route table:
the path resolves to a view, the document title is set from the route's meta,
and unknown paths redirect to the coins list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		coinsCmd(),
		triggerParsingCmd(),
	)

	return rootCmd
}
