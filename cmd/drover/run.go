package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/droverhq/drover/internal/driver"
	"github.com/droverhq/drover/internal/logging"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the configured driver and hold it until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logging.SetLevel(logging.ParseLevel(cfg.Log.Level))

			svcCfg, err := cfg.ServiceConfig()
			if err != nil {
				return err
			}

			svc := driver.New(svcCfg)
			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.URL())

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			return svc.Stop()
		},
	}
}
