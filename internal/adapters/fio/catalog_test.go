package fio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

func TestMapRecipes(t *testing.T) {
	raw := []fioRecipe{
		{BuildingTicker: "FRM", TimeMs: 6 * 60 * 60 * 1000, // 6h ⇒ 4 runs/día
			Inputs:  []fioMaterial{{Ticker: "H2O", Amount: 2}},
			Outputs: []fioMaterial{{Ticker: "HCP", Amount: 2}}},
		{BuildingTicker: "INC", TimeMs: 12 * 60 * 60 * 1000,
			Outputs: []fioMaterial{{Ticker: "HCP", Amount: 4}, {Ticker: "ASH", Amount: 1}}},
		{BuildingTicker: "INC", TimeMs: 0, // sin duración: descartada
			Outputs: []fioMaterial{{Ticker: "C", Amount: 1}}},
		{BuildingTicker: "COL", TimeMs: 1000, Outputs: nil}, // sin output: descartada
	}

	recipes := mapRecipes(raw)
	require.Len(t, recipes, 2)

	// IDs estables TICKER_N numerados por ticker en orden de la API
	assert.Equal(t, "HCP_1", recipes[0].ID)
	assert.Equal(t, "HCP_2", recipes[1].ID)
	assert.Equal(t, 4.0, recipes[0].RunsPerDay)
	assert.Equal(t, 2.0, recipes[1].RunsPerDay)

	require.Len(t, recipes[0].Inputs, 1)
	assert.Equal(t, "H2O", recipes[0].Inputs[0].Ticker)

	// el segundo output se registra como secundario
	require.Len(t, recipes[1].Secondary, 1)
	assert.Equal(t, "ASH", recipes[1].Secondary[0].Ticker)
}

func TestMapBuildings(t *testing.T) {
	prices := domain.PriceCatalog{
		"BSE": {Ask: domain.Float(100)},
		"BBH": {PP7: domain.Float(50)}, // sin ask: cae al promedio
	}
	raw := []fioBuilding{
		{Ticker: "FRM", Name: "Farmstead", AreaCost: 20, BuildingCosts: []fioBuildingCost{
			{CommodityTicker: "BSE", Amount: 2},
			{CommodityTicker: "BBH", Amount: 3},
			{CommodityTicker: "XXX", Amount: 9}, // sin precio: valorado a 0
		}},
		{Ticker: ""}, // sin ticker: descartado
	}

	buildings := mapBuildings(raw, prices)
	require.Len(t, buildings, 1)
	assert.Equal(t, "FRM", buildings[0].Ticker)
	assert.Equal(t, 20.0, buildings[0].Area)
	// 2×100 + 3×50 = 350
	assert.Equal(t, 350.0, buildings[0].BuildCost)
}
