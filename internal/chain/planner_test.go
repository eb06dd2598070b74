package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/ports"
)

type stubRecipes struct {
	catalog *domain.RecipeCatalog
	err     error
}

func (s stubRecipes) FetchCatalog(context.Context) (*domain.RecipeCatalog, error) {
	return s.catalog, s.err
}

type stubPrices struct {
	prices domain.PriceCatalog
	err    error
}

func (s stubPrices) FetchPrices(context.Context) (domain.PriceCatalog, error) {
	return s.prices, s.err
}

type recordingNotifier struct {
	report *domain.Report
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, r *domain.Report) error {
	n.report = r
	return n.err
}

func newTestPlanner(t *testing.T, notifier *recordingNotifier) *Planner {
	t.Helper()
	var port ports.Notifier
	if notifier != nil {
		port = notifier
	}
	return NewPlanner(
		stubRecipes{catalog: testCatalog(t)},
		stubPrices{prices: testPrices()},
		nil,
		port,
		Config{PriceField: domain.PricePP7},
	)
}

func TestPlanner_Evaluate(t *testing.T) {
	p := newTestPlanner(t, nil)

	report, err := p.Evaluate(context.Background(), Request{Ticker: "C"})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "C", report.Ticker)
	assert.Equal(t, domain.PricePP7, report.PriceField)
	assert.False(t, report.GeneratedAt.IsZero())

	require.Len(t, report.Options, 2)
	assert.Equal(t, "make:C_1[buy:HCP]", report.Best().Scenario)
	assert.NotNil(t, report.Best().Rollup)

	// condensada ⊆ completa, y el árbol viene resuelto
	assert.LessOrEqual(t, len(report.Condensed), len(report.Options))
	require.NotNil(t, report.Tree)
	assert.Equal(t, "C_1", report.Tree.RecipeID)
}

func TestPlanner_Evaluate_TopN(t *testing.T) {
	p := newTestPlanner(t, nil)

	report, err := p.Evaluate(context.Background(), Request{Ticker: "C", TopN: 1})
	require.NoError(t, err)
	assert.Len(t, report.Options, 1)
}

func TestPlanner_Evaluate_NoScenariosIsNotAnError(t *testing.T) {
	p := newTestPlanner(t, nil)

	report, err := p.Evaluate(context.Background(), Request{Ticker: "H2O"})
	require.NoError(t, err)
	assert.Empty(t, report.Options)
	assert.Empty(t, report.Condensed)
	assert.Nil(t, report.Best())
}

func TestPlanner_Evaluate_EmptyTicker(t *testing.T) {
	p := newTestPlanner(t, nil)
	_, err := p.Evaluate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestPlanner_Evaluate_SourceErrorPropagates(t *testing.T) {
	p := NewPlanner(
		stubRecipes{err: errors.New("fio down")},
		stubPrices{prices: testPrices()},
		nil, nil,
		Config{},
	)
	_, err := p.Evaluate(context.Background(), Request{Ticker: "C"})
	assert.ErrorContains(t, err, "fetch catalog")
}

func TestPlanner_Run_NotifierFailureDegrades(t *testing.T) {
	n := &recordingNotifier{err: errors.New("tty closed")}
	p := newTestPlanner(t, n)

	report, err := p.Run(context.Background(), Request{Ticker: "C"})
	require.NoError(t, err) // el fallo del notifier no tumba la evaluación
	assert.Same(t, report, n.report)
}

func TestPlanner_Evaluate_RequestPriceFieldOverridesConfig(t *testing.T) {
	p := newTestPlanner(t, nil)

	report, err := p.Evaluate(context.Background(), Request{Ticker: "C", PriceField: domain.PriceBid})
	require.NoError(t, err)
	assert.Equal(t, domain.PriceBid, report.PriceField)
	// el fixture no tiene bid: sin precios de compra no hay rama buy y sin
	// venta el profit cae, pero la evaluación sigue definida
	assert.Empty(t, report.Options)
}
