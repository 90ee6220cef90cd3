package journal

import (
	"time"

	"github.com/rustyeddy/tracker/ledger"
)

// TradeStatistics is the summary over a strategy's closed trades. Never
// persisted; recomputed from the ledger on each call.
type TradeStatistics struct {
	TotalTrades int
	Wins        int
	Losses      int
	WinRate     float64 // percent, 0 when there are no closed trades
	TotalPnL    float64
}

// DailyPnL is one calendar-date bucket within the reference month.
type DailyPnL struct {
	Date string // 2006-01-02
	PnL  float64
}

// MonthlyPnL is one month bucket within the reference year.
type MonthlyPnL struct {
	Month int // 1-12
	Year  int
	PnL   float64
}

// Statistics summarizes the strategy's closed trades. The counts and sum
// come from the store's aggregate query; the win rate is derived here so
// the zero-trade case stays exactly 0 rather than NaN.
func (j *Journal) Statistics(strategyID string) (TradeStatistics, error) {
	tally, err := j.store.TradeTally(strategyID)
	if err != nil {
		return TradeStatistics{}, err
	}

	stats := TradeStatistics{
		TotalTrades: tally.Total,
		Wins:        tally.Wins,
		Losses:      tally.Losses,
		TotalPnL:    tally.PnL,
	}
	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalTrades) * 100
	}
	return stats, nil
}

// CumulativePnL returns the running P&L sum over closed trades in entry
// order - the equity curve's data points. One element per closed trade; an
// empty ledger yields an empty sequence.
func (j *Journal) CumulativePnL(strategyID string) ([]float64, error) {
	trades, err := j.store.ListTrades(strategyID, ledger.ClosedTrades, ledger.Ascending)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(trades))
	var sum float64
	for _, t := range trades {
		sum += pnlOrZero(t)
		out = append(out, sum)
	}
	return out, nil
}

// DailyPnL groups the strategy's closed trades by calendar date within
// ref's month, evaluated in ref's location. Dates without trades are
// omitted, not zero-filled. A zero ref means now.
func (j *Journal) DailyPnL(strategyID string, ref time.Time) ([]DailyPnL, error) {
	ref = j.orNow(ref)
	trades, err := j.store.ListTrades(strategyID, ledger.ClosedTrades, ledger.Ascending)
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	var dates []string
	for _, t := range trades {
		entry := t.EntryTime.In(ref.Location())
		if entry.Year() != ref.Year() || entry.Month() != ref.Month() {
			continue
		}
		day := entry.Format("2006-01-02")
		if _, ok := sums[day]; !ok {
			dates = append(dates, day)
		}
		sums[day] += pnlOrZero(t)
	}

	// Trades arrive entry-ascending, so first appearance order is already
	// date order.
	out := make([]DailyPnL, 0, len(dates))
	for _, day := range dates {
		out = append(out, DailyPnL{Date: day, PnL: sums[day]})
	}
	return out, nil
}

// MonthlyPnL groups the strategy's closed trades by month within ref's
// year, evaluated in ref's location. Months without trades are omitted.
func (j *Journal) MonthlyPnL(strategyID string, ref time.Time) ([]MonthlyPnL, error) {
	ref = j.orNow(ref)
	trades, err := j.store.ListTrades(strategyID, ledger.ClosedTrades, ledger.Ascending)
	if err != nil {
		return nil, err
	}

	sums := map[int]float64{}
	var months []int
	for _, t := range trades {
		entry := t.EntryTime.In(ref.Location())
		if entry.Year() != ref.Year() {
			continue
		}
		m := int(entry.Month())
		if _, ok := sums[m]; !ok {
			months = append(months, m)
		}
		sums[m] += pnlOrZero(t)
	}

	out := make([]MonthlyPnL, 0, len(months))
	for _, m := range months {
		out = append(out, MonthlyPnL{Month: m, Year: ref.Year(), PnL: sums[m]})
	}
	return out, nil
}

func (j *Journal) orNow(ref time.Time) time.Time {
	if ref.IsZero() {
		return j.now()
	}
	return ref
}

func pnlOrZero(t ledger.Trade) float64 {
	if t.PnL == nil {
		return 0
	}
	return *t.PnL
}
