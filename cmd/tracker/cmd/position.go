package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tracker/journal"
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Manage saved overlay button positions",
	Long: `Save and inspect the screen coordinates the overlay buttons were
dragged to. One saved position per (strategy, button).

Examples:
  tracker position set <strategy-id> blue 40 760
  tracker position list <strategy-id>`,
}

var positionSetCmd = &cobra.Command{
	Use:   "set <strategy-id> <blue|green|red> <x> <y>",
	Short: "Save a button position",
	Args:  cobra.ExactArgs(4),
	RunE:  runPositionSet,
}

var positionListCmd = &cobra.Command{
	Use:   "list <strategy-id>",
	Short: "List saved button positions",
	Args:  cobra.ExactArgs(1),
	RunE:  runPositionList,
}

func init() {
	rootCmd.AddCommand(positionCmd)
	positionCmd.AddCommand(positionSetCmd)
	positionCmd.AddCommand(positionListCmd)
}

func runPositionSet(cmd *cobra.Command, args []string) error {
	button, err := parseButton(args[1])
	if err != nil {
		return err
	}
	x, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}

	return withJournal(func(j *journal.Journal) error {
		return j.SaveButtonPosition(args[0], button, x, y)
	})
}

func runPositionList(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.Journal) error {
		positions, err := j.ButtonPositions(args[0])
		if err != nil {
			return err
		}
		for _, p := range positions {
			fmt.Printf("%-5s  %d,%d\n", p.Button, p.X, p.Y)
		}
		return nil
	})
}
