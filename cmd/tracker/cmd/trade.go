package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tracker/journal"
	"github.com/rustyeddy/tracker/ledger"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Start and close trades",
	Long: `Log the trade lifecycle against a strategy.

A strategy has at most one active trade. "win" and "loss" close that active
trade and record the strategy's configured profit or loss amount.

Examples:
  tracker trade start <strategy-id>
  tracker trade win <strategy-id>
  tracker trade loss <strategy-id>
  tracker trade list <strategy-id>`,
}

var tradeStartCmd = &cobra.Command{
	Use:   "start <strategy-id>",
	Short: "Open a trade for the strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.Journal) error {
			tradeID, err := j.StartTrade(args[0])
			if err != nil {
				return err
			}
			fmt.Println(tradeID)
			return nil
		})
	},
}

var tradeWinCmd = &cobra.Command{
	Use:   "win <strategy-id>",
	Short: "Close the active trade as a win",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return closeActive(args[0], ledger.Win)
	},
}

var tradeLossCmd = &cobra.Command{
	Use:   "loss <strategy-id>",
	Short: "Close the active trade as a loss",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return closeActive(args[0], ledger.Loss)
	},
}

var tradeActiveCmd = &cobra.Command{
	Use:   "active [strategy-id]",
	Short: "Show the active trade, for one strategy or any",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.Journal) error {
			var (
				t   *ledger.Trade
				err error
			)
			if len(args) == 1 {
				t, err = j.ActiveTrade(args[0])
			} else {
				t, err = j.AnyActiveTrade()
			}
			if err != nil {
				return err
			}
			if t == nil {
				fmt.Println("no active trade")
				return nil
			}
			fmt.Println(journal.FormatTrade(*t))
			return nil
		})
	},
}

var tradeListCmd = &cobra.Command{
	Use:   "list <strategy-id>",
	Short: "List the strategy's trades, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ledger.AllTrades
		if tradeListClosed {
			filter = ledger.ClosedTrades
		}
		return withJournal(func(j *journal.Journal) error {
			trades, err := j.Trades(args[0], filter, ledger.Descending)
			if err != nil {
				return err
			}
			fmt.Print(journal.FormatTrades(trades))
			return nil
		})
	},
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a single trade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.Journal) error {
			return j.DeleteTrade(args[0])
		})
	},
}

var tradeListClosed bool

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeStartCmd)
	tradeCmd.AddCommand(tradeWinCmd)
	tradeCmd.AddCommand(tradeLossCmd)
	tradeCmd.AddCommand(tradeActiveCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	tradeListCmd.Flags().BoolVar(&tradeListClosed, "closed", false, "only closed trades")
}

// closeActive resolves the strategy's active trade and closes it.
func closeActive(strategyID string, result ledger.TradeResult) error {
	return withJournal(func(j *journal.Journal) error {
		t, err := j.ActiveTrade(strategyID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("strategy %s: %w", strategyID, ledger.ErrTradeNotActive)
		}
		if err := j.EndTrade(t.ID, result); err != nil {
			return err
		}

		closed, err := j.Trade(t.ID)
		if err != nil {
			return err
		}
		fmt.Println(journal.FormatTrade(closed))
		return nil
	})
}
