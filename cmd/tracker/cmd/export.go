package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tracker/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export <strategy-id>",
	Short: "Export a strategy's closed trades to CSV",
	Long: `Write the strategy's closed trades to a CSV file, one row per trade
in entry order, columns Trade_No, Entry_DateTime, Exit_DateTime, Result and
PnL_Amount.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var exportDir string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Export.Dir
	if exportDir != "" {
		dir = exportDir
	}

	return withJournal(func(j *journal.Journal) error {
		path, err := j.ExportCSV(args[0], dir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	})
}
