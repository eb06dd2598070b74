package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// testCatalog arma la cadena C ← HCP ← H2O usada en casi todos los tests:
//
//	C_1   en INC (área 30, coste 300): 1×C por run, 2 runs/día, input 1×HCP
//	HCP_1 en FRM (área 20, coste 100): 2×HCP por run, 4 runs/día, input 2×H2O
//	H2O   materia prima, sin receta
func testCatalog(t *testing.T) *domain.RecipeCatalog {
	t.Helper()
	c, err := domain.NewRecipeCatalog(
		[]domain.Recipe{
			{ID: "C_1", Ticker: "C", Building: "INC", OutputAmount: 1, RunsPerDay: 2,
				Inputs: []domain.RecipeInput{{Ticker: "HCP", Amount: 1}}},
			{ID: "HCP_1", Ticker: "HCP", Building: "FRM", OutputAmount: 2, RunsPerDay: 4,
				Inputs: []domain.RecipeInput{{Ticker: "H2O", Amount: 2}}},
		},
		[]domain.Building{
			{Ticker: "INC", Area: 30, BuildCost: 300},
			{Ticker: "FRM", Area: 20, BuildCost: 100},
		},
	)
	require.NoError(t, err)
	return c
}

func testPrices() domain.PriceCatalog {
	return domain.PriceCatalog{
		"C":   {PP7: domain.Float(20)},
		"HCP": {PP7: domain.Float(5)},
		"H2O": {PP7: domain.Float(1)},
	}
}

func newTestEngine(t *testing.T, ov domain.Overrides) *Engine {
	t.Helper()
	return NewEngine(testCatalog(t), testPrices(), ov, Config{PriceField: domain.PricePP7})
}

// cyclicCatalog arma A ↔ B, ambos con precio, para los tests de ciclo.
func cyclicCatalog(t *testing.T) (*domain.RecipeCatalog, domain.PriceCatalog) {
	t.Helper()
	c, err := domain.NewRecipeCatalog(
		[]domain.Recipe{
			{ID: "A_1", Ticker: "A", Building: "BLD", OutputAmount: 1, RunsPerDay: 1,
				Inputs: []domain.RecipeInput{{Ticker: "B", Amount: 1}}},
			{ID: "B_1", Ticker: "B", Building: "BLD", OutputAmount: 1, RunsPerDay: 1,
				Inputs: []domain.RecipeInput{{Ticker: "A", Amount: 1}}},
		},
		[]domain.Building{{Ticker: "BLD", Area: 10, BuildCost: 50}},
	)
	require.NoError(t, err)
	prices := domain.PriceCatalog{
		"A": {PP7: domain.Float(3)},
		"B": {PP7: domain.Float(4)},
	}
	return c, prices
}
