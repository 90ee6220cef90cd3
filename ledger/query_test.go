package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedClosedTrades opens and closes one trade per pnl value, with entry
// times one hour apart starting at base.
func seedClosedTrades(t *testing.T, s *SQLite, strategyID string, base time.Time, pnls []float64) []Trade {
	t.Helper()

	out := make([]Trade, 0, len(pnls))
	for i, pnl := range pnls {
		entry := base.Add(time.Duration(i) * time.Hour)
		tr := openTrade(t, s, strategyID, entry)

		result := Win
		if pnl < 0 {
			result = Loss
		}
		require.NoError(t, s.CloseTrade(tr.ID, entry.Add(30*time.Minute), result, pnl))
		out = append(out, tr)
	}
	return out
}

func TestListTradesFilterAndOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Listing")

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	seedClosedTrades(t, s, st.ID, base, []float64{50, -20})
	open := openTrade(t, s, st.ID, base.Add(3*time.Hour))

	all, err := s.ListTrades(st.ID, AllTrades, Ascending)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].EntryTime.After(all[i-1].EntryTime))
	}

	closed, err := s.ListTrades(st.ID, ClosedTrades, Ascending)
	require.NoError(t, err)
	require.Len(t, closed, 2)
	for _, tr := range closed {
		assert.False(t, tr.Active)
	}

	openOnly, err := s.ListTrades(st.ID, OpenTrades, Ascending)
	require.NoError(t, err)
	require.Len(t, openOnly, 1)
	assert.Equal(t, open.ID, openOnly[0].ID)

	desc, err := s.ListTrades(st.ID, AllTrades, Descending)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, open.ID, desc[0].ID)
}

func TestListTradesEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Quiet")

	trades, err := s.ListTrades(st.ID, AllTrades, Ascending)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestActiveTradeLookups(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Active")

	// Nothing open yet.
	tr, err := s.ActiveTrade(st.ID)
	require.NoError(t, err)
	assert.Nil(t, tr)

	any, err := s.AnyActiveTrade()
	require.NoError(t, err)
	assert.Nil(t, any)

	entry := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	opened := openTrade(t, s, st.ID, entry)

	tr, err = s.ActiveTrade(st.ID)
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, opened.ID, tr.ID)
	assert.True(t, tr.Active)

	any, err = s.AnyActiveTrade()
	require.NoError(t, err)
	require.NotNil(t, any)
	assert.Equal(t, opened.ID, any.ID)

	require.NoError(t, s.CloseTrade(opened.ID, entry.Add(time.Minute), Win, 50))

	tr, err = s.ActiveTrade(st.ID)
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestTradeTally(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Tally")

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	seedClosedTrades(t, s, st.ID, base, []float64{50, 50, 50, -20, -20})

	// An open trade must not count.
	openTrade(t, s, st.ID, base.Add(24*time.Hour))

	tally, err := s.TradeTally(st.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, tally.Total)
	assert.Equal(t, 3, tally.Wins)
	assert.Equal(t, 2, tally.Losses)
	assert.InDelta(t, 110, tally.PnL, 1e-9)
}

func TestTradeTallyEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Empty Tally")

	tally, err := s.TradeTally(st.ID)
	require.NoError(t, err)
	assert.Equal(t, TradeTally{}, tally)
}

func TestTradesIsolatedPerStrategy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := testStrategy(t, s, "A")
	b := testStrategy(t, s, "B")

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	seedClosedTrades(t, s, a.ID, base, []float64{50})
	seedClosedTrades(t, s, b.ID, base, []float64{-20, -20})

	ta, err := s.TradeTally(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ta.Total)

	tb, err := s.TradeTally(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Total)
	assert.InDelta(t, -40, tb.PnL, 1e-9)
}
