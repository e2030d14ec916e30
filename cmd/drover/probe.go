package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/driver"
)

func newProbeCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether a running driver answers the readiness probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !driver.CheckReady(cmd.Context(), http.DefaultClient, url) {
				return fmt.Errorf("driver at %s is not ready", url)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ready")
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://127.0.0.1:4444", "driver base URL")
	return cmd
}
