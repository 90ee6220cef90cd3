// Package journal holds the trade lifecycle and the statistics derived from
// the closed-trade ledger. It owns the one rule that matters: a win credits
// the strategy's configured profit amount, a loss debits its loss amount,
// and a trade closes exactly once.
package journal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/tracker/ledger"
	"github.com/rustyeddy/tracker/pkg/id"
)

// EventKind tags a change notification.
type EventKind int

const (
	StrategyChanged EventKind = iota
	TradeChanged
	OverlayChanged
)

// Event is delivered to subscribers after a successful mutation.
type Event struct {
	Kind       EventKind
	StrategyID string
}

// Journal wraps a ledger store with the lifecycle rules. The store handle is
// injected; there is no ambient global.
type Journal struct {
	store ledger.Store
	now   func() time.Time

	mu   sync.Mutex
	subs []func(Event)
}

func New(store ledger.Store) *Journal {
	return &Journal{store: store, now: time.Now}
}

// Subscribe registers fn to run after every successful mutation. Callbacks
// run synchronously on the mutating goroutine, so keep them short.
func (j *Journal) Subscribe(fn func(Event)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.subs = append(j.subs, fn)
}

func (j *Journal) notify(e Event) {
	j.mu.Lock()
	subs := j.subs
	j.mu.Unlock()
	for _, fn := range subs {
		fn(e)
	}
}

// CreateStrategy validates and stores a new strategy. Profit and loss are
// magnitudes; the sign is applied at close time.
func (j *Journal) CreateStrategy(name, description string, profit, loss float64) (ledger.Strategy, error) {
	if strings.TrimSpace(name) == "" {
		return ledger.Strategy{}, fmt.Errorf("strategy name must not be empty")
	}
	if profit < 0 || loss < 0 {
		return ledger.Strategy{}, fmt.Errorf("profit and loss amounts must not be negative")
	}

	now := j.now().UTC()
	st := ledger.Strategy{
		ID:           id.New(),
		Name:         name,
		Description:  description,
		ProfitAmount: profit,
		LossAmount:   loss,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := j.store.InsertStrategy(st); err != nil {
		return ledger.Strategy{}, err
	}
	j.notify(Event{Kind: StrategyChanged, StrategyID: st.ID})
	return st, nil
}

func (j *Journal) Strategy(strategyID string) (ledger.Strategy, error) {
	return j.store.GetStrategy(strategyID)
}

func (j *Journal) Strategies() ([]ledger.Strategy, error) {
	return j.store.ListStrategies()
}

func (j *Journal) SetDescription(strategyID, description string) error {
	if err := j.store.UpdateStrategyDescription(strategyID, description, j.now().UTC()); err != nil {
		return err
	}
	j.notify(Event{Kind: StrategyChanged, StrategyID: strategyID})
	return nil
}

func (j *Journal) SetProfitAmount(strategyID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("profit amount must not be negative")
	}
	if err := j.store.UpdateStrategyProfitAmount(strategyID, amount, j.now().UTC()); err != nil {
		return err
	}
	j.notify(Event{Kind: StrategyChanged, StrategyID: strategyID})
	return nil
}

func (j *Journal) SetLossAmount(strategyID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("loss amount must not be negative")
	}
	if err := j.store.UpdateStrategyLossAmount(strategyID, amount, j.now().UTC()); err != nil {
		return err
	}
	j.notify(Event{Kind: StrategyChanged, StrategyID: strategyID})
	return nil
}

// DeleteStrategy removes the strategy and, through the store's cascade, all
// of its trades and overlay positions.
func (j *Journal) DeleteStrategy(strategyID string) error {
	if err := j.store.DeleteStrategy(strategyID); err != nil {
		return err
	}
	j.notify(Event{Kind: StrategyChanged, StrategyID: strategyID})
	return nil
}

// StartTrade opens a trade for the strategy. The store's single-active
// constraint makes a double start fail with ledger.ErrTradeActive rather
// than leaving two open trades.
func (j *Journal) StartTrade(strategyID string) (string, error) {
	if _, err := j.store.GetStrategy(strategyID); err != nil {
		return "", err
	}

	t := ledger.Trade{
		ID:         id.New(),
		StrategyID: strategyID,
		EntryTime:  j.now().UTC(),
		Active:     true,
	}
	if err := j.store.InsertTrade(t); err != nil {
		return "", err
	}
	j.notify(Event{Kind: TradeChanged, StrategyID: strategyID})
	return t.ID, nil
}

// EndTrade closes an active trade with the given result and records the
// signed P&L: +profit on a win, -loss on a loss, taken from the owning
// strategy's configured amounts. Closing a missing or already-closed trade
// is an error, never a silent no-op.
func (j *Journal) EndTrade(tradeID string, result ledger.TradeResult) error {
	if result != ledger.Win && result != ledger.Loss {
		return fmt.Errorf("invalid trade result %q", result)
	}

	t, err := j.store.GetTrade(tradeID)
	if err != nil {
		return err
	}
	if !t.Active {
		return ledger.ErrTradeNotActive
	}

	st, err := j.store.GetStrategy(t.StrategyID)
	if err != nil {
		return err
	}

	pnl := st.ProfitAmount
	if result == ledger.Loss {
		pnl = -st.LossAmount
	}

	// CloseTrade re-checks is_active, so a racing close surfaces as
	// ErrTradeNotActive here instead of overwriting the outcome.
	if err := j.store.CloseTrade(tradeID, j.now().UTC(), result, pnl); err != nil {
		return err
	}
	j.notify(Event{Kind: TradeChanged, StrategyID: t.StrategyID})
	return nil
}

// ActiveTrade returns the strategy's open trade, nil when there is none.
func (j *Journal) ActiveTrade(strategyID string) (*ledger.Trade, error) {
	return j.store.ActiveTrade(strategyID)
}

// AnyActiveTrade reports whether any strategy has a trade in progress.
func (j *Journal) AnyActiveTrade() (*ledger.Trade, error) {
	return j.store.AnyActiveTrade()
}

func (j *Journal) Trades(strategyID string, filter ledger.TradeFilter, order ledger.Order) ([]ledger.Trade, error) {
	return j.store.ListTrades(strategyID, filter, order)
}

func (j *Journal) Trade(tradeID string) (ledger.Trade, error) {
	return j.store.GetTrade(tradeID)
}

func (j *Journal) DeleteTrade(tradeID string) error {
	t, err := j.store.GetTrade(tradeID)
	if err != nil {
		return err
	}
	if err := j.store.DeleteTrade(tradeID); err != nil {
		return err
	}
	j.notify(Event{Kind: TradeChanged, StrategyID: t.StrategyID})
	return nil
}

// SaveButtonPosition upserts where an overlay button was dropped for a
// strategy.
func (j *Journal) SaveButtonPosition(strategyID string, button ledger.ButtonType, x, y int) error {
	if err := j.store.SaveOverlayPosition(strategyID, button, x, y); err != nil {
		return err
	}
	j.notify(Event{Kind: OverlayChanged, StrategyID: strategyID})
	return nil
}

// ButtonPosition returns the saved coordinate for one overlay button.
func (j *Journal) ButtonPosition(strategyID string, button ledger.ButtonType) (ledger.OverlayPosition, error) {
	return j.store.OverlayPositionFor(strategyID, button)
}

// ButtonPositions returns all saved overlay coordinates for a strategy.
func (j *Journal) ButtonPositions(strategyID string) ([]ledger.OverlayPosition, error) {
	return j.store.OverlayPositions(strategyID)
}
