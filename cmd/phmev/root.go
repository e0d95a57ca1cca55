package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/phmevstats/internal/config"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "phmev",
	Short: "PHMEV reimbursement dataset loader and analyzer",
	Long: "Loads the French PHMEV open dataset (pharmaceutical reimbursements by " +
		"establishment) from CSV/Parquet into Postgres and runs filtered " +
		"aggregation reports over it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return nil
		}
		return cfg.LoadFromFile(configPath)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("PHMEV_DB_URL"), "Postgres connection string (or set PHMEV_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Path to optional YAML config (exclusion labels, report defaults)")
}
