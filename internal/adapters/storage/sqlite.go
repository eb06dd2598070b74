package storage

// sqlite.go — histórico ligero de precios, trades y evaluaciones.
//
// Estrategia:
//   - `prices`: UNA fila por ticker (UPSERT con el último snapshot).
//   - `trades`: append-only, insumo del suavizado; prune a 30 días.
//   - `evaluations`: resumen de cada report (no el árbol completo) — las
//     cadenas resueltas nunca se cachean ni se releen por el engine.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS prices (
    ticker     TEXT PRIMARY KEY,
    bid        REAL,
    ask        REAL,
    pp7        REAL,
    pp30       REAL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    ticker    TEXT    NOT NULL,
    price     REAL    NOT NULL,
    volume    REAL    NOT NULL,
    traded_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
    id             TEXT PRIMARY KEY,
    ticker         TEXT NOT NULL,
    generated_at   DATETIME NOT NULL,
    price_field    TEXT NOT NULL,
    demand         REAL NOT NULL DEFAULT 0,
    options        INTEGER NOT NULL DEFAULT 0,
    condensed      INTEGER NOT NULL DEFAULT 0,
    best_recipe    TEXT,
    best_scenario  TEXT,
    best_profit_pa REAL
);

CREATE INDEX IF NOT EXISTS idx_trades_ticker_at ON trades(ticker, traded_at DESC);
CREATE INDEX IF NOT EXISTS idx_eval_ticker      ON evaluations(ticker, generated_at DESC);
`

const retentionTrades = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage (y sirve de PriceSource/TradeSource
// offline) usando SQLite puro Go, sin CGo.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos, aplica el schema y
// limpia trades antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveEvaluation persiste el resumen de un report.
func (s *SQLiteStorage) SaveEvaluation(ctx context.Context, report *domain.Report) error {
	var bestRecipe, bestScenario string
	var bestPA *float64
	if best := report.Best(); best != nil {
		bestRecipe = best.RecipeID
		bestScenario = best.Scenario
		pa := best.TotalProfitPA()
		bestPA = &pa
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
			(id, ticker, generated_at, price_field, demand, options, condensed,
			 best_recipe, best_scenario, best_profit_pa)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.Ticker,
		report.GeneratedAt,
		string(report.PriceField),
		report.Demand,
		len(report.Options),
		len(report.Condensed),
		bestRecipe,
		bestScenario,
		bestPA,
	); err != nil {
		return fmt.Errorf("storage.SaveEvaluation: insert %s: %w", report.ID, err)
	}
	return nil
}

// SavePrices hace upsert del snapshot completo en una transacción.
func (s *SQLiteStorage) SavePrices(ctx context.Context, prices domain.PriceCatalog) error {
	if len(prices) == 0 {
		return nil
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SavePrices: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prices (ticker, bid, ask, pp7, pp30, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			bid        = excluded.bid,
			ask        = excluded.ask,
			pp7        = excluded.pp7,
			pp30       = excluded.pp30,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("storage.SavePrices: prepare: %w", err)
	}
	defer stmt.Close()

	for ticker, p := range prices {
		if _, err := stmt.ExecContext(ctx, ticker, p.Bid, p.Ask, p.PP7, p.PP30, now); err != nil {
			return fmt.Errorf("storage.SavePrices: upsert %s: %w", ticker, err)
		}
	}
	return tx.Commit()
}

// SaveTrades añade trades crudos.
func (s *SQLiteStorage) SaveTrades(ctx context.Context, trades []domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveTrades: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trades (ticker, price, volume, traded_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveTrades: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx, t.Ticker, t.Price, t.Volume, t.TradedAt.UTC()); err != nil {
			return fmt.Errorf("storage.SaveTrades: insert %s: %w", t.Ticker, err)
		}
	}
	return tx.Commit()
}

// FetchPrices devuelve el último snapshot guardado. Permite evaluar
// offline con el storage como PriceSource.
func (s *SQLiteStorage) FetchPrices(ctx context.Context) (domain.PriceCatalog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ticker, bid, ask, pp7, pp30 FROM prices`)
	if err != nil {
		return nil, fmt.Errorf("storage.FetchPrices: query: %w", err)
	}
	defer rows.Close()

	out := make(domain.PriceCatalog)
	for rows.Next() {
		var ticker string
		var p domain.Price
		if err := rows.Scan(&ticker, &p.Bid, &p.Ask, &p.PP7, &p.PP30); err != nil {
			return nil, fmt.Errorf("storage.FetchPrices: scan: %w", err)
		}
		out[ticker] = p
	}
	return out, rows.Err()
}

// FetchTrades devuelve los trades desde el instante dado, más viejos primero.
func (s *SQLiteStorage) FetchTrades(ctx context.Context, since time.Time) ([]domain.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, price, volume, traded_at
		FROM trades
		WHERE traded_at >= ?
		ORDER BY traded_at ASC
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.FetchTrades: query: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		if err := rows.Scan(&t.Ticker, &t.Price, &t.Volume, &t.TradedAt); err != nil {
			return nil, fmt.Errorf("storage.FetchTrades: scan: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// pruneOld borra trades fuera de la ventana de retención.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionTrades)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE traded_at < ?`, cutoff); err != nil {
		// best effort: el prune fallido no bloquea el arranque
		return
	}
}

// Close cierra la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
