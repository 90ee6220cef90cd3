package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tracker/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats <strategy-id>",
	Short: "Show performance statistics for a strategy",
	Long: `Show summary statistics for a strategy's closed trades: counts, win
rate and total P&L, plus daily buckets for the current month, monthly
buckets for the current year, and the cumulative P&L sequence.

Days and months without trades are omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

var (
	statsDaily      bool
	statsMonthly    bool
	statsCumulative bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsDaily, "daily", false, "daily P&L for the current month")
	statsCmd.Flags().BoolVar(&statsMonthly, "monthly", false, "monthly P&L for the current year")
	statsCmd.Flags().BoolVar(&statsCumulative, "curve", false, "cumulative P&L sequence")
}

func runStats(cmd *cobra.Command, args []string) error {
	strategyID := args[0]
	now := time.Now()

	return withJournal(func(j *journal.Journal) error {
		stats, err := j.Statistics(strategyID)
		if err != nil {
			return err
		}
		fmt.Print(journal.FormatStatistics(stats))

		if statsDaily {
			daily, err := j.DailyPnL(strategyID, now)
			if err != nil {
				return err
			}
			fmt.Printf("\ndaily (%s):\n", now.Format("January 2006"))
			for _, d := range daily {
				fmt.Printf("  %s  %s\n", d.Date, journal.FormatPnL(d.PnL))
			}
		}

		if statsMonthly {
			monthly, err := j.MonthlyPnL(strategyID, now)
			if err != nil {
				return err
			}
			fmt.Printf("\nmonthly (%d):\n", now.Year())
			for _, m := range monthly {
				fmt.Printf("  %s  %s\n", time.Month(m.Month), journal.FormatPnL(m.PnL))
			}
		}

		if statsCumulative {
			curve, err := j.CumulativePnL(strategyID)
			if err != nil {
				return err
			}
			fmt.Println("\ncumulative:")
			for i, v := range curve {
				fmt.Printf("  %3d  %s\n", i+1, journal.FormatPnL(v))
			}
		}
		return nil
	})
}
