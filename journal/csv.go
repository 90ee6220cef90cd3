package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/tracker/ledger"
)

const csvTimeLayout = "2006-01-02 15:04:05"

// WriteCSV writes trades in the journal's export format: one row per trade,
// numbered from 1 in the order given, P&L rendered as +N.NN or -N.NN.
func WriteCSV(w io.Writer, trades []ledger.Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Trade_No", "Entry_DateTime", "Exit_DateTime", "Result", "PnL_Amount"}); err != nil {
		return err
	}

	for i, t := range trades {
		exit := ""
		if t.ExitTime != nil {
			exit = t.ExitTime.Format(csvTimeLayout)
		}
		result := ""
		if t.Result != nil {
			result = string(*t.Result)
		}
		pnl := ""
		if t.PnL != nil {
			pnl = FormatPnL(*t.PnL)
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			t.EntryTime.Format(csvTimeLayout),
			exit,
			result,
			pnl,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatPnL renders a signed amount with two decimals and an explicit
// leading + for non-negative values.
func FormatPnL(amount float64) string {
	if amount >= 0 {
		// A loss closed on a zero loss amount carries negative zero;
		// fold the sign bit so it prints +0.00, not +-0.00.
		return fmt.Sprintf("+%.2f", math.Abs(amount))
	}
	return fmt.Sprintf("%.2f", amount)
}

// ExportCSV writes the strategy's closed trades, entry-ascending, to a new
// file in dir and returns its path.
func (j *Journal) ExportCSV(strategyID, dir string) (string, error) {
	st, err := j.store.GetStrategy(strategyID)
	if err != nil {
		return "", err
	}

	trades, err := j.store.ListTrades(strategyID, ledger.ClosedTrades, ledger.Ascending)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("trades_%s_%d.csv",
		strings.ReplaceAll(st.Name, " ", "_"), j.now().UnixMilli())
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err := WriteCSV(f, trades); err != nil {
		f.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
