package ledger

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testStrategy(t *testing.T, s *SQLite, name string) Strategy {
	t.Helper()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	st := Strategy{
		ID:           newID(),
		Name:         name,
		ProfitAmount: 50,
		LossAmount:   20,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.InsertStrategy(st))
	return st
}

func openTrade(t *testing.T, s *SQLite, strategyID string, entry time.Time) Trade {
	t.Helper()

	tr := Trade{
		ID:         newID(),
		StrategyID: strategyID,
		EntryTime:  entry,
		Active:     true,
	}
	require.NoError(t, s.InsertTrade(tr))
	return tr
}

func TestSchemaCreated(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	rows, err := s.DB().Query(
		`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('strategies','trades','overlay_positions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["strategies"])
	assert.True(t, found["trades"])
	assert.True(t, found["overlay_positions"])
}

func TestStrategyRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "London Open")

	got, err := s.GetStrategy(st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
	assert.Equal(t, "London Open", got.Name)
	assert.InDelta(t, 50, got.ProfitAmount, 1e-9)
	assert.InDelta(t, 20, got.LossAmount, 1e-9)
	assert.True(t, got.CreatedAt.Equal(st.CreatedAt))
}

func TestGetStrategyNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.GetStrategy("missing")
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestStrategyUpdatesRefreshUpdatedAt(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Scalp")

	later := st.UpdatedAt.Add(time.Hour)
	require.NoError(t, s.UpdateStrategyDescription(st.ID, "breakout only", later))

	got, err := s.GetStrategy(st.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakout only", got.Description)
	assert.True(t, got.UpdatedAt.Equal(later))

	later = later.Add(time.Hour)
	require.NoError(t, s.UpdateStrategyProfitAmount(st.ID, 75, later))
	later = later.Add(time.Hour)
	require.NoError(t, s.UpdateStrategyLossAmount(st.ID, 25, later))

	got, err = s.GetStrategy(st.ID)
	require.NoError(t, err)
	assert.InDelta(t, 75, got.ProfitAmount, 1e-9)
	assert.InDelta(t, 25, got.LossAmount, 1e-9)
	assert.True(t, got.UpdatedAt.Equal(later))
}

func TestUpdateMissingStrategy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.UpdateStrategyDescription("missing", "x", time.Now())
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestInsertTradeRequiresStrategy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.InsertTrade(Trade{
		ID:         newID(),
		StrategyID: "missing",
		EntryTime:  time.Now().UTC(),
		Active:     true,
	})
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestSecondActiveTradeRejected(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "One At A Time")

	entry := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	openTrade(t, s, st.ID, entry)

	err := s.InsertTrade(Trade{
		ID:         newID(),
		StrategyID: st.ID,
		EntryTime:  entry.Add(time.Second),
		Active:     true,
	})
	assert.ErrorIs(t, err, ErrTradeActive)

	// A second active trade on a different strategy is fine.
	other := testStrategy(t, s, "Other")
	openTrade(t, s, other.ID, entry)
}

func TestCloseTrade(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Close Me")

	entry := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	tr := openTrade(t, s, st.ID, entry)

	exit := entry.Add(15 * time.Minute)
	require.NoError(t, s.CloseTrade(tr.ID, exit, Win, 50))

	got, err := s.GetTrade(tr.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	require.NotNil(t, got.ExitTime)
	assert.True(t, got.ExitTime.Equal(exit))
	require.NotNil(t, got.Result)
	assert.Equal(t, Win, *got.Result)
	require.NotNil(t, got.PnL)
	assert.InDelta(t, 50, *got.PnL, 1e-9)

	// Closed trades close exactly once.
	err = s.CloseTrade(tr.ID, exit.Add(time.Minute), Loss, -20)
	assert.ErrorIs(t, err, ErrTradeNotActive)

	// The outcome did not change.
	got, err = s.GetTrade(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, Win, *got.Result)
	assert.InDelta(t, 50, *got.PnL, 1e-9)
}

func TestCloseMissingTrade(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.CloseTrade("missing", time.Now(), Win, 50)
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestDeleteStrategyCascades(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Doomed")

	entry := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)
	tr := openTrade(t, s, st.ID, entry)
	require.NoError(t, s.CloseTrade(tr.ID, entry.Add(time.Minute), Win, 50))
	openTrade(t, s, st.ID, entry.Add(time.Hour))
	require.NoError(t, s.SaveOverlayPosition(st.ID, ButtonBlue, 10, 20))

	require.NoError(t, s.DeleteStrategy(st.ID))

	trades, err := s.ListTrades(st.ID, AllTrades, Ascending)
	require.NoError(t, err)
	assert.Empty(t, trades)

	positions, err := s.OverlayPositions(st.ID)
	require.NoError(t, err)
	assert.Empty(t, positions)

	_, err = s.GetTrade(tr.ID)
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestOverlayPositionUpsert(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Overlay")

	require.NoError(t, s.SaveOverlayPosition(st.ID, ButtonBlue, 10, 20))
	require.NoError(t, s.SaveOverlayPosition(st.ID, ButtonGreen, 30, 40))

	// Saving the same button again moves it instead of adding a row.
	require.NoError(t, s.SaveOverlayPosition(st.ID, ButtonBlue, 50, 60))

	positions, err := s.OverlayPositions(st.ID)
	require.NoError(t, err)
	assert.Len(t, positions, 2)

	p, err := s.OverlayPositionFor(st.ID, ButtonBlue)
	require.NoError(t, err)
	assert.Equal(t, 50, p.X)
	assert.Equal(t, 60, p.Y)

	_, err = s.OverlayPositionFor(st.ID, ButtonRed)
	assert.ErrorIs(t, err, ErrOverlayNotFound)
}

func TestOverlayPositionRequiresStrategy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.SaveOverlayPosition("missing", ButtonRed, 1, 2)
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestForeignKeysEnforced(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	var fk int
	err := s.DB().QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestOpenBadPath(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "x.db"))
	assert.Error(t, err)
}

func TestNullColumnsStayNull(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	st := testStrategy(t, s, "Open Fields")
	tr := openTrade(t, s, st.ID, time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC))

	var (
		exit   sql.NullTime
		result sql.NullString
		pnl    sql.NullFloat64
	)
	err := s.DB().QueryRow(
		`SELECT exit_time, result, pnl_amount FROM trades WHERE id = ?`, tr.ID).
		Scan(&exit, &result, &pnl)
	require.NoError(t, err)
	assert.False(t, exit.Valid)
	assert.False(t, result.Valid)
	assert.False(t, pnl.Valid)
}

func TestDeleteTradeMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	assert.True(t, errors.Is(s.DeleteTrade("missing"), ErrTradeNotFound))
}
