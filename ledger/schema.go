package ledger

const Schema = `
CREATE TABLE IF NOT EXISTS strategies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	profit_amount REAL NOT NULL DEFAULT 0,
	loss_amount REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	strategy_id TEXT NOT NULL REFERENCES strategies(id) ON DELETE CASCADE,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME,
	result TEXT,
	pnl_amount REAL,
	is_active INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy_id);
CREATE INDEX IF NOT EXISTS idx_trades_entry ON trades(entry_time);

-- At most one active trade per strategy, enforced here rather than by
-- caller discipline.
CREATE UNIQUE INDEX IF NOT EXISTS idx_trades_one_active
	ON trades(strategy_id) WHERE is_active = 1;

CREATE TABLE IF NOT EXISTS overlay_positions (
	id TEXT PRIMARY KEY,
	strategy_id TEXT NOT NULL REFERENCES strategies(id) ON DELETE CASCADE,
	button_type TEXT NOT NULL,
	position_x INTEGER NOT NULL,
	position_y INTEGER NOT NULL,
	UNIQUE(strategy_id, button_type)
);
`
