package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tracker/journal"
	"github.com/rustyeddy/tracker/ledger"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Manage trading strategies",
	Long: `Create, inspect and edit strategies.

Each strategy carries a fixed profit amount (credited on a win) and a fixed
loss amount (debited on a loss). Deleting a strategy removes all of its
trades and saved overlay positions.

Examples:
  tracker strategy add "London Open" --profit 50 --loss 20
  tracker strategy list
  tracker strategy set-profit <strategy-id> 75
  tracker strategy delete <strategy-id>`,
}

var strategyAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new strategy",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategyAdd,
}

var strategyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all strategies, newest first",
	Args:  cobra.NoArgs,
	RunE:  runStrategyList,
}

var strategyShowCmd = &cobra.Command{
	Use:   "show <strategy-id>",
	Short: "Show one strategy with its summary statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategyShow,
}

var strategySetDescriptionCmd = &cobra.Command{
	Use:   "set-description <strategy-id> <text>",
	Short: "Replace the strategy description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.Journal) error {
			return j.SetDescription(args[0], args[1])
		})
	},
}

var strategySetProfitCmd = &cobra.Command{
	Use:   "set-profit <strategy-id> <amount>",
	Short: "Set the amount credited on a win",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		return withJournal(func(j *journal.Journal) error {
			return j.SetProfitAmount(args[0], amount)
		})
	},
}

var strategySetLossCmd = &cobra.Command{
	Use:   "set-loss <strategy-id> <amount>",
	Short: "Set the amount debited on a loss",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		return withJournal(func(j *journal.Journal) error {
			return j.SetLossAmount(args[0], amount)
		})
	},
}

var strategyDeleteCmd = &cobra.Command{
	Use:   "delete <strategy-id>",
	Short: "Delete a strategy and all of its trades",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.Journal) error {
			return j.DeleteStrategy(args[0])
		})
	},
}

var (
	strategyProfit      float64
	strategyLoss        float64
	strategyDescription string
)

func init() {
	rootCmd.AddCommand(strategyCmd)
	strategyCmd.AddCommand(strategyAddCmd)
	strategyCmd.AddCommand(strategyListCmd)
	strategyCmd.AddCommand(strategyShowCmd)
	strategyCmd.AddCommand(strategySetDescriptionCmd)
	strategyCmd.AddCommand(strategySetProfitCmd)
	strategyCmd.AddCommand(strategySetLossCmd)
	strategyCmd.AddCommand(strategyDeleteCmd)

	strategyAddCmd.Flags().Float64Var(&strategyProfit, "profit", 0, "amount credited on a win")
	strategyAddCmd.Flags().Float64Var(&strategyLoss, "loss", 0, "amount debited on a loss")
	strategyAddCmd.Flags().StringVar(&strategyDescription, "description", "", "free-text description")
}

// withJournal opens the journal, runs fn, and closes the store.
func withJournal(fn func(*journal.Journal) error) error {
	j, closer, err := openJournal()
	if err != nil {
		return err
	}
	defer closer()
	return fn(j)
}

func runStrategyAdd(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.Journal) error {
		st, err := j.CreateStrategy(args[0], strategyDescription, strategyProfit, strategyLoss)
		if err != nil {
			return err
		}
		fmt.Println(st.ID)
		return nil
	})
}

func runStrategyList(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.Journal) error {
		strategies, err := j.Strategies()
		if err != nil {
			return err
		}
		for _, st := range strategies {
			fmt.Print(journal.FormatStrategy(st))
		}
		return nil
	})
}

func runStrategyShow(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.Journal) error {
		st, err := j.Strategy(args[0])
		if err != nil {
			return err
		}
		stats, err := j.Statistics(st.ID)
		if err != nil {
			return err
		}

		fmt.Print(journal.FormatStrategy(st))
		fmt.Println()
		fmt.Print(journal.FormatStatistics(stats))

		if active, err := j.ActiveTrade(st.ID); err != nil {
			return err
		} else if active != nil {
			fmt.Printf("\nactive trade: %s\n", journal.FormatTrade(*active))
		}
		return nil
	})
}

// parseButton converts a CLI argument into a ledger button type.
func parseButton(s string) (ledger.ButtonType, error) {
	switch s {
	case "blue":
		return ledger.ButtonBlue, nil
	case "green":
		return ledger.ButtonGreen, nil
	case "red":
		return ledger.ButtonRed, nil
	}
	return "", fmt.Errorf("unknown button %q (want blue, green or red)", s)
}
