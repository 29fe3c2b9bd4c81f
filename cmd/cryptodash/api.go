package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/apiclient"
)

const defaultAPIOrigin = "http://localhost:8000"

// apiFlags binds the flags every backend API command takes.
func apiFlags(cmd *cobra.Command, origin *string, timeout *time.Duration) {
	cmd.Flags().StringVar(origin, "origin", cryptodash.EnvVarOrString("API_ORIGIN", defaultAPIOrigin), "Origin of the backend API")
	cmd.Flags().DurationVar(timeout, "timeout", 30*time.Second, "Time to wait for the backend API")
}

func coinsCmd() *cobra.Command {
	var (
		origin  string
		timeout time.Duration
		id      int
		page    int
	)

	cmd := &cobra.Command{
		Use:   "coins",
		Short: "List upcoming coins from the backend API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiclient.Parse(origin, apiclient.WithHTTPClient(&http.Client{Timeout: timeout}))
			if err != nil {
				return err
			}

			var v any
			switch {
			case id > 0:
				v, err = c.Coin(cmd.Context(), id)
			case page > 0:
				v, err = c.CoinsPage(cmd.Context(), page)
			default:
				v, err = c.Coins(cmd.Context())
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}

	apiFlags(cmd, &origin, &timeout)
	cmd.Flags().IntVar(&id, "id", 0, "Show only the coin with this ID")
	cmd.Flags().IntVar(&page, "page", 0, "Show only this page of the listing; every page when unset")

	return cmd
}

func triggerParsingCmd() *cobra.Command {
	var (
		origin  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "trigger-parsing",
		Short: "Ask the backend API to parse new coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiclient.Parse(origin, apiclient.WithHTTPClient(&http.Client{Timeout: timeout}))
			if err != nil {
				return err
			}

			status, err := c.TriggerParsing(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status.Status, status.Message)
			return nil
		},
	}

	apiFlags(cmd, &origin, &timeout)

	return cmd
}
