// Command reportctl imports, audits and summarises water report snapshots.
package main

import (
	"os"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/config"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/logging"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Manage water issue report data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd(cfg), newAuditCmd(cfg), newStatsCmd(cfg))
	return root
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.WithError(err).Error("reportctl failed")
		os.Exit(1)
	}
}
