package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tracker/ledger"
)

// FormatStrategy renders a strategy as a short text block for the CLI.
func FormatStrategy(st ledger.Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", shortID(st.ID), st.Name)
	if st.Description != "" {
		fmt.Fprintf(&b, "  %s\n", st.Description)
	}
	fmt.Fprintf(&b, "  win %s / loss %s\n", FormatPnL(st.ProfitAmount), FormatPnL(-st.LossAmount))
	fmt.Fprintf(&b, "  created %s\n", st.CreatedAt.Local().Format("2006-01-02 15:04"))
	return b.String()
}

// FormatTrade renders one trade on a single line.
func FormatTrade(t ledger.Trade) string {
	entry := t.EntryTime.Local().Format(time.DateTime)
	if t.Active {
		return fmt.Sprintf("%s  %s  OPEN", shortID(t.ID), entry)
	}

	exit := ""
	if t.ExitTime != nil {
		exit = t.ExitTime.Local().Format(time.DateTime)
	}
	result := ""
	if t.Result != nil {
		result = string(*t.Result)
	}
	pnl := ""
	if t.PnL != nil {
		pnl = FormatPnL(*t.PnL)
	}
	return fmt.Sprintf("%s  %s  %s  %-4s  %s", shortID(t.ID), entry, exit, result, pnl)
}

// FormatTrades renders trades one per line.
func FormatTrades(trades []ledger.Trade) string {
	var b strings.Builder
	for _, t := range trades {
		b.WriteString(FormatTrade(t))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatStatistics renders the summary block shown by `tracker stats`.
func FormatStatistics(s TradeStatistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "trades:    %d\n", s.TotalTrades)
	fmt.Fprintf(&b, "wins:      %d\n", s.Wins)
	fmt.Fprintf(&b, "losses:    %d\n", s.Losses)
	fmt.Fprintf(&b, "win rate:  %.1f%%\n", s.WinRate)
	fmt.Fprintf(&b, "total p&l: %s\n", FormatPnL(s.TotalPnL))
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
