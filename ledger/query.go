package ledger

import (
	"database/sql"
	"fmt"
)

// GetStrategy returns a single strategy by id.
func (s *SQLite) GetStrategy(id string) (Strategy, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, profit_amount, loss_amount, created_at, updated_at
		FROM strategies
		WHERE id = ?`, id)

	var st Strategy
	err := row.Scan(
		&st.ID,
		&st.Name,
		&st.Description,
		&st.ProfitAmount,
		&st.LossAmount,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Strategy{}, ErrStrategyNotFound
		}
		return Strategy{}, fmt.Errorf("get strategy: %w", err)
	}
	return st, nil
}

// ListStrategies returns all strategies, newest first.
func (s *SQLite) ListStrategies() ([]Strategy, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, profit_amount, loss_amount, created_at, updated_at
		FROM strategies
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer rows.Close()

	var out []Strategy
	for rows.Next() {
		var st Strategy
		if err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Description,
			&st.ProfitAmount,
			&st.LossAmount,
			&st.CreatedAt,
			&st.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const tradeColumns = `id, strategy_id, entry_time, exit_time, result, pnl_amount, is_active`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (Trade, error) {
	var (
		t      Trade
		exit   sql.NullTime
		result sql.NullString
		pnl    sql.NullFloat64
	)
	err := row.Scan(
		&t.ID,
		&t.StrategyID,
		&t.EntryTime,
		&exit,
		&result,
		&pnl,
		&t.Active,
	)
	if err != nil {
		return Trade{}, err
	}
	if exit.Valid {
		v := exit.Time
		t.ExitTime = &v
	}
	if result.Valid {
		v := TradeResult(result.String)
		t.Result = &v
	}
	if pnl.Valid {
		v := pnl.Float64
		t.PnL = &v
	}
	return t, nil
}

// GetTrade returns a single trade by id.
func (s *SQLite) GetTrade(id string) (Trade, error) {
	row := s.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)

	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Trade{}, ErrTradeNotFound
		}
		return Trade{}, fmt.Errorf("get trade: %w", err)
	}
	return t, nil
}

// ListTrades returns a strategy's trades, optionally restricted to open or
// closed ones, ordered by entry time.
func (s *SQLite) ListTrades(strategyID string, filter TradeFilter, order Order) ([]Trade, error) {
	q := `SELECT ` + tradeColumns + ` FROM trades WHERE strategy_id = ?`
	switch filter {
	case OpenTrades:
		q += ` AND is_active = 1`
	case ClosedTrades:
		q += ` AND is_active = 0`
	}
	q += ` ORDER BY entry_time`
	if order == Descending {
		q += ` DESC`
	}

	rows, err := s.db.Query(q, strategyID)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveTrade returns the strategy's open trade, or nil when there is none.
// The schema guarantees at most one.
func (s *SQLite) ActiveTrade(strategyID string) (*Trade, error) {
	row := s.db.QueryRow(
		`SELECT `+tradeColumns+` FROM trades WHERE strategy_id = ? AND is_active = 1 LIMIT 1`,
		strategyID)
	return s.activeTradeRow(row)
}

// AnyActiveTrade returns an open trade across all strategies, or nil. Used
// by the overlay to tell whether any session is in progress.
func (s *SQLite) AnyActiveTrade() (*Trade, error) {
	row := s.db.QueryRow(`SELECT ` + tradeColumns + ` FROM trades WHERE is_active = 1 LIMIT 1`)
	return s.activeTradeRow(row)
}

func (s *SQLite) activeTradeRow(row rowScanner) (*Trade, error) {
	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("active trade: %w", err)
	}
	return &t, nil
}

// TradeTally aggregates a strategy's closed trades in the store. A NULL
// pnl_amount counts as zero.
func (s *SQLite) TradeTally(strategyID string) (TradeTally, error) {
	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(CASE WHEN result = 'WIN' THEN 1 END),
		       COUNT(CASE WHEN result = 'LOSS' THEN 1 END),
		       COALESCE(SUM(COALESCE(pnl_amount, 0)), 0)
		FROM trades
		WHERE strategy_id = ? AND is_active = 0`, strategyID)

	var tally TradeTally
	if err := row.Scan(&tally.Total, &tally.Wins, &tally.Losses, &tally.PnL); err != nil {
		return TradeTally{}, fmt.Errorf("trade tally: %w", err)
	}
	return tally, nil
}

// OverlayPositionFor returns the saved coordinate for one button of a
// strategy.
func (s *SQLite) OverlayPositionFor(strategyID string, button ButtonType) (OverlayPosition, error) {
	row := s.db.QueryRow(`
		SELECT id, strategy_id, button_type, position_x, position_y
		FROM overlay_positions
		WHERE strategy_id = ? AND button_type = ?`, strategyID, string(button))

	var p OverlayPosition
	err := row.Scan(&p.ID, &p.StrategyID, &p.Button, &p.X, &p.Y)
	if err != nil {
		if err == sql.ErrNoRows {
			return OverlayPosition{}, ErrOverlayNotFound
		}
		return OverlayPosition{}, fmt.Errorf("overlay position: %w", err)
	}
	return p, nil
}

// OverlayPositions returns all saved button coordinates for a strategy.
func (s *SQLite) OverlayPositions(strategyID string) ([]OverlayPosition, error) {
	rows, err := s.db.Query(`
		SELECT id, strategy_id, button_type, position_x, position_y
		FROM overlay_positions
		WHERE strategy_id = ?
		ORDER BY button_type`, strategyID)
	if err != nil {
		return nil, fmt.Errorf("overlay positions: %w", err)
	}
	defer rows.Close()

	var out []OverlayPosition
	for rows.Next() {
		var p OverlayPosition
		if err := rows.Scan(&p.ID, &p.StrategyID, &p.Button, &p.X, &p.Y); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
