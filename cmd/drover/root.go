package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "drover",
		Short:         "Launch, probe, and talk to browser-automation driver processes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a drover config file (YAML)")

	root.AddCommand(
		newRunCmd(&configPath),
		newProbeCmd(),
		newSessionCmd(),
	)
	return root
}
