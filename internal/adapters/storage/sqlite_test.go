package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_PricesRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	prices := domain.PriceCatalog{
		"H2O": {Bid: domain.Float(0.9), Ask: domain.Float(1.1), PP7: domain.Float(1.0)},
		"HCP": {PP7: domain.Float(5)},
	}
	require.NoError(t, s.SavePrices(ctx, prices))

	got, err := s.FetchPrices(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 0.9, *got["H2O"].Bid)
	assert.Equal(t, 1.0, *got["H2O"].PP7)
	// nil se conserva como NULL, no como cero
	assert.Nil(t, got["HCP"].Bid)
	assert.Nil(t, got["H2O"].PP30)

	// el upsert reemplaza el snapshot del ticker
	require.NoError(t, s.SavePrices(ctx, domain.PriceCatalog{
		"H2O": {PP7: domain.Float(1.2)},
	}))
	got, err = s.FetchPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.2, *got["H2O"].PP7)
	assert.Nil(t, got["H2O"].Bid)
}

func TestSQLiteStorage_TradesRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	trades := []domain.Trade{
		{Ticker: "H2O", Price: 1.05, Volume: 250, TradedAt: now.Add(-48 * time.Hour)},
		{Ticker: "H2O", Price: 0.98, Volume: 100, TradedAt: now.Add(-2 * time.Hour)},
		{Ticker: "FE", Price: 10, Volume: 5, TradedAt: now.Add(-10 * 24 * time.Hour)},
	}
	require.NoError(t, s.SaveTrades(ctx, trades))

	// since filtra, y el orden es ascendente por fecha
	got, err := s.FetchTrades(ctx, now.Add(-72*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1.05, got[0].Price)
	assert.Equal(t, 0.98, got[1].Price)

	all, err := s.FetchTrades(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLiteStorage_SaveEvaluation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	report := &domain.Report{
		ID:          "eval-1",
		Ticker:      "C",
		GeneratedAt: time.Now().UTC(),
		PriceField:  domain.PricePP7,
		Demand:      2,
		Options: []*domain.MakeOption{{
			RecipeID: "C_1",
			Scenario: "make:C_1[buy:HCP]",
			Rollup:   &domain.RollupMetrics{TotalProfitPA: 1.0},
		}},
		Condensed: []*domain.MakeOption{{RecipeID: "C_1"}},
	}
	require.NoError(t, s.SaveEvaluation(ctx, report))

	var ticker, bestRecipe string
	var options int
	var bestPA float64
	err := s.db.QueryRow(`
		SELECT ticker, options, best_recipe, best_profit_pa FROM evaluations WHERE id = ?`,
		"eval-1").Scan(&ticker, &options, &bestRecipe, &bestPA)
	require.NoError(t, err)
	assert.Equal(t, "C", ticker)
	assert.Equal(t, 1, options)
	assert.Equal(t, "C_1", bestRecipe)
	assert.Equal(t, 1.0, bestPA)

	// el id es clave primaria: reinsertar falla
	assert.Error(t, s.SaveEvaluation(ctx, report))
}

func TestSQLiteStorage_EmptyReportSavesNullBest(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	report := &domain.Report{
		ID:          "eval-empty",
		Ticker:      "H2O",
		GeneratedAt: time.Now().UTC(),
		PriceField:  domain.PricePP7,
	}
	require.NoError(t, s.SaveEvaluation(ctx, report))

	var bestPA *float64
	err := s.db.QueryRow(`SELECT best_profit_pa FROM evaluations WHERE id = ?`,
		"eval-empty").Scan(&bestPA)
	require.NoError(t, err)
	assert.Nil(t, bestPA)
}

func TestSQLiteStorage_SaveEmptyBatchesAreNoOps(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	assert.NoError(t, s.SavePrices(ctx, nil))
	assert.NoError(t, s.SaveTrades(ctx, nil))
}
