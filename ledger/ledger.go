// Package ledger is the durable record store behind the trade journal:
// strategies, the trades logged against them, and the saved overlay button
// positions. Everything above it talks to the Store interface so the SQLite
// handle can be swapped out in tests.
package ledger

import (
	"errors"
	"time"
)

// TradeResult is the outcome recorded when a trade closes.
type TradeResult string

const (
	Win  TradeResult = "WIN"
	Loss TradeResult = "LOSS"
)

// ButtonType identifies one of the three overlay buttons.
type ButtonType string

const (
	ButtonBlue  ButtonType = "BLUE"  // start trade
	ButtonGreen ButtonType = "GREEN" // close as win
	ButtonRed   ButtonType = "RED"   // close as loss
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrTradeNotFound    = errors.New("trade not found")
	ErrTradeNotActive   = errors.New("trade is not active")
	ErrTradeActive      = errors.New("strategy already has an active trade")
	ErrOverlayNotFound  = errors.New("overlay position not found")
)

// Strategy is a user-defined trading plan with fixed payoff magnitudes.
// ProfitAmount and LossAmount are magnitudes (>= 0); the sign is applied
// only when a trade closes.
type Strategy struct {
	ID           string
	Name         string
	Description  string
	ProfitAmount float64
	LossAmount   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Trade is one journaled attempt under a strategy. A trade is either fully
// open (Active, outcome fields nil) or fully closed (ExitTime, Result and
// PnL all set) - never partially.
type Trade struct {
	ID         string
	StrategyID string
	EntryTime  time.Time
	ExitTime   *time.Time
	Result     *TradeResult
	PnL        *float64
	Active     bool
}

// Closed reports whether the trade has a recorded outcome.
func (t Trade) Closed() bool { return !t.Active }

// OverlayPosition remembers where the user dragged an overlay button.
// One row per (strategy, button).
type OverlayPosition struct {
	ID         string
	StrategyID string
	Button     ButtonType
	X          int
	Y          int
}

// TradeFilter selects which trades a listing returns.
type TradeFilter int

const (
	AllTrades TradeFilter = iota
	OpenTrades
	ClosedTrades
)

// Order is the entry-time ordering of a trade listing.
type Order int

const (
	Ascending Order = iota
	Descending
)

// TradeTally is the raw aggregate the store computes over closed trades.
// Win rate is derived a layer up.
type TradeTally struct {
	Total  int
	Wins   int
	Losses int
	PnL    float64
}

// Store is the capability the journal needs from its ledger. *SQLite
// satisfies it.
type Store interface {
	InsertStrategy(Strategy) error
	GetStrategy(id string) (Strategy, error)
	ListStrategies() ([]Strategy, error)
	UpdateStrategyDescription(id, description string, now time.Time) error
	UpdateStrategyProfitAmount(id string, amount float64, now time.Time) error
	UpdateStrategyLossAmount(id string, amount float64, now time.Time) error
	DeleteStrategy(id string) error

	InsertTrade(Trade) error
	GetTrade(id string) (Trade, error)
	CloseTrade(id string, exit time.Time, result TradeResult, pnl float64) error
	DeleteTrade(id string) error
	ListTrades(strategyID string, filter TradeFilter, order Order) ([]Trade, error)
	ActiveTrade(strategyID string) (*Trade, error)
	AnyActiveTrade() (*Trade, error)
	TradeTally(strategyID string) (TradeTally, error)

	SaveOverlayPosition(strategyID string, button ButtonType, x, y int) error
	OverlayPositionFor(strategyID string, button ButtonType) (OverlayPosition, error)
	OverlayPositions(strategyID string) ([]OverlayPosition, error)
}
