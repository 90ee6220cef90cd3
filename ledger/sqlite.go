package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tracker/pkg/id"
)

func newID() string { return id.New() }

// SQLite is the ledger store backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Foreign keys are switched on so deleting a strategy cascades to its
// trades and overlay positions; WAL keeps readers from blocking writers.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for callers that need raw queries.
func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) InsertStrategy(st Strategy) error {
	_, err := s.db.Exec(`
		INSERT INTO strategies
		(id, name, description, profit_amount, loss_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.Description, st.ProfitAmount, st.LossAmount,
		st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert strategy: %w", err)
	}
	return nil
}

func (s *SQLite) UpdateStrategyDescription(id, description string, now time.Time) error {
	return s.updateStrategy(id, `description`, description, now)
}

func (s *SQLite) UpdateStrategyProfitAmount(id string, amount float64, now time.Time) error {
	return s.updateStrategy(id, `profit_amount`, amount, now)
}

func (s *SQLite) UpdateStrategyLossAmount(id string, amount float64, now time.Time) error {
	return s.updateStrategy(id, `loss_amount`, amount, now)
}

func (s *SQLite) updateStrategy(id, column string, value any, now time.Time) error {
	// column is one of our own literals, never caller input.
	res, err := s.db.Exec(
		`UPDATE strategies SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		value, now, id,
	)
	if err != nil {
		return fmt.Errorf("update strategy %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStrategyNotFound
	}
	return nil
}

// DeleteStrategy removes the strategy; its trades and overlay positions go
// with it via the cascade.
func (s *SQLite) DeleteStrategy(id string) error {
	res, err := s.db.Exec(`DELETE FROM strategies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete strategy: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStrategyNotFound
	}
	return nil
}

// InsertTrade records a newly opened trade. The partial unique index on
// active trades turns a double-start into ErrTradeActive instead of a
// second open trade.
func (s *SQLite) InsertTrade(t Trade) error {
	var exit any
	if t.ExitTime != nil {
		exit = *t.ExitTime
	}
	var result any
	if t.Result != nil {
		result = string(*t.Result)
	}
	var pnl any
	if t.PnL != nil {
		pnl = *t.PnL
	}

	_, err := s.db.Exec(`
		INSERT INTO trades
		(id, strategy_id, entry_time, exit_time, result, pnl_amount, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.StrategyID, t.EntryTime, exit, result, pnl, t.Active,
	)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) {
			switch serr.ExtendedCode {
			case sqlite3.ErrConstraintUnique:
				return ErrTradeActive
			case sqlite3.ErrConstraintForeignKey:
				return ErrStrategyNotFound
			}
		}
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// CloseTrade sets the outcome fields and clears the active flag as one
// statement, guarded on is_active so a trade can only close once.
func (s *SQLite) CloseTrade(id string, exit time.Time, result TradeResult, pnl float64) error {
	res, err := s.db.Exec(`
		UPDATE trades
		SET exit_time = ?, result = ?, pnl_amount = ?, is_active = 0
		WHERE id = ? AND is_active = 1`,
		exit, string(result), pnl, id,
	)
	if err != nil {
		return fmt.Errorf("close trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing trade from one that already closed.
		if _, err := s.GetTrade(id); errors.Is(err, ErrTradeNotFound) {
			return ErrTradeNotFound
		}
		return ErrTradeNotActive
	}
	return nil
}

func (s *SQLite) DeleteTrade(id string) error {
	res, err := s.db.Exec(`DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTradeNotFound
	}
	return nil
}

// SaveOverlayPosition upserts the saved screen coordinate for one overlay
// button of a strategy.
func (s *SQLite) SaveOverlayPosition(strategyID string, button ButtonType, x, y int) error {
	_, err := s.db.Exec(`
		INSERT INTO overlay_positions (id, strategy_id, button_type, position_x, position_y)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(strategy_id, button_type)
		DO UPDATE SET position_x = excluded.position_x, position_y = excluded.position_y`,
		newID(), strategyID, string(button), x, y,
	)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return ErrStrategyNotFound
		}
		return fmt.Errorf("save overlay position: %w", err)
	}
	return nil
}
