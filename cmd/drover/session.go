package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/logging"
	"github.com/droverhq/drover/internal/remote"
)

func newSessionCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Open and close a throwaway session, printing the decoded envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn := remote.NewConnection(url)

			env, err := conn.NewSession(cmd.Context(), nil)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if env.SessionID != "" {
				if _, err := conn.DeleteSession(cmd.Context(), env.SessionID); err != nil {
					logging.Warnf("closing session %s: %v", env.SessionID, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://127.0.0.1:4444", "driver base URL")
	return cmd
}
