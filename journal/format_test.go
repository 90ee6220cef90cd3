package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tracker/ledger"
)

func TestFormatStatistics(t *testing.T) {
	t.Parallel()

	out := FormatStatistics(TradeStatistics{
		TotalTrades: 5,
		Wins:        3,
		Losses:      2,
		WinRate:     60,
		TotalPnL:    70,
	})

	assert.Contains(t, out, "trades:    5")
	assert.Contains(t, out, "wins:      3")
	assert.Contains(t, out, "losses:    2")
	assert.Contains(t, out, "win rate:  60.0%")
	assert.Contains(t, out, "total p&l: +70.00")
}

func TestFormatTradeOpen(t *testing.T) {
	t.Parallel()

	tr := ledger.Trade{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		EntryTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		Active:    true,
	}

	out := FormatTrade(tr)
	assert.True(t, strings.HasPrefix(out, "01ARZ3ND"))
	assert.Contains(t, out, "OPEN")
}

func TestFormatTradeClosed(t *testing.T) {
	t.Parallel()

	exit := time.Date(2025, 6, 2, 9, 45, 0, 0, time.UTC)
	win := ledger.Win
	pnl := 50.0
	tr := ledger.Trade{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		EntryTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		ExitTime:  &exit,
		Result:    &win,
		PnL:       &pnl,
	}

	out := FormatTrade(tr)
	assert.Contains(t, out, "WIN")
	assert.Contains(t, out, "+50.00")
	assert.NotContains(t, out, "OPEN")
}

func TestFormatStrategy(t *testing.T) {
	t.Parallel()

	st := ledger.Strategy{
		ID:           "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Name:         "London Open",
		Description:  "first hour only",
		ProfitAmount: 50,
		LossAmount:   20,
		CreatedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	out := FormatStrategy(st)
	assert.Contains(t, out, "London Open")
	assert.Contains(t, out, "first hour only")
	assert.Contains(t, out, "win +50.00 / loss -20.00")
}
