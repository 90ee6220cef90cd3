package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tracker/config"
	"github.com/rustyeddy/tracker/journal"
	"github.com/rustyeddy/tracker/ledger"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "A personal trading journal with per-strategy win/loss tracking",
	Long: `Tracker is a personal trading journal. Define strategies with fixed
profit and loss amounts, log trades against them as they happen, and review
win rate, total P&L, daily and monthly buckets and the cumulative equity
curve.

All records live in a local SQLite database.`,
}

var (
	cfgFile string
	dbPath  string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to the journal database (overrides config)")
}

// loadConfig resolves the effective configuration from --config and --db.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// openJournal opens the ledger named by the flags and wraps it in a journal.
// The caller must invoke the returned closer.
func openJournal() (*journal.Journal, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	return journal.New(store), store.Close, nil
}
