package fio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

const (
	recipesPath   = "/recipes/allrecipes"
	buildingsPath = "/building/allbuildings"
)

// FetchCatalog implementa ports.RecipeSource: descarga recetas y edificios
// y los convierte al catálogo validado del dominio. El coste de capital de
// cada edificio se valora con el snapshot de precios actual (campo ask,
// con fallback al promedio).
func (c *Client) FetchCatalog(ctx context.Context) (*domain.RecipeCatalog, error) {
	var rawRecipes []fioRecipe
	if err := c.get(ctx, c.dataLimiter, recipesPath, &rawRecipes); err != nil {
		return nil, fmt.Errorf("fio.FetchCatalog: recipes: %w", err)
	}

	var rawBuildings []fioBuilding
	if err := c.get(ctx, c.dataLimiter, buildingsPath, &rawBuildings); err != nil {
		return nil, fmt.Errorf("fio.FetchCatalog: buildings: %w", err)
	}

	prices, err := c.FetchPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fio.FetchCatalog: prices for building costs: %w", err)
	}

	recipes := mapRecipes(rawRecipes)
	buildings := mapBuildings(rawBuildings, prices)

	catalog, err := domain.NewRecipeCatalog(recipes, buildings)
	if err != nil {
		return nil, fmt.Errorf("fio.FetchCatalog: %w", err)
	}

	slog.Debug("fio catalog loaded",
		"recipes", catalog.Len(),
		"buildings", len(buildings),
	)
	return catalog, nil
}

// mapRecipes convierte los DTOs a recetas del dominio con IDs estables de
// la forma TICKER_N, numerados en el orden en que la API lista las recetas
// de cada ticker. Ese orden define la receta por defecto.
func mapRecipes(raw []fioRecipe) []domain.Recipe {
	perTicker := make(map[string]int)
	recipes := make([]domain.Recipe, 0, len(raw))

	for _, r := range raw {
		if len(r.Outputs) == 0 || r.TimeMs <= 0 {
			continue
		}
		primary := r.Outputs[0]
		if primary.Ticker == "" || primary.Amount <= 0 {
			continue
		}

		perTicker[primary.Ticker]++
		recipe := domain.Recipe{
			ID:           fmt.Sprintf("%s_%d", primary.Ticker, perTicker[primary.Ticker]),
			Ticker:       primary.Ticker,
			Building:     r.BuildingTicker,
			OutputAmount: primary.Amount,
			RunsPerDay:   dayMs / r.TimeMs,
		}
		for _, in := range r.Inputs {
			recipe.Inputs = append(recipe.Inputs, domain.RecipeInput{Ticker: in.Ticker, Amount: in.Amount})
		}
		for _, out := range r.Outputs[1:] {
			recipe.Secondary = append(recipe.Secondary, domain.RecipeInput{Ticker: out.Ticker, Amount: out.Amount})
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}

const dayMs = 24 * 60 * 60 * 1000

// mapBuildings convierte los DTOs valorando los materiales de construcción
// con el snapshot de precios. Materiales sin precio se valoran a 0 con un
// warning: mejor un coste optimista que descartar el edificio.
func mapBuildings(raw []fioBuilding, prices domain.PriceCatalog) []domain.Building {
	buildings := make([]domain.Building, 0, len(raw))
	for _, b := range raw {
		if b.Ticker == "" {
			continue
		}

		var cost float64
		for _, m := range b.BuildingCosts {
			unit, ok := prices.UnitPrice(m.CommodityTicker, domain.PriceAsk)
			if !ok {
				unit, ok = prices.UnitPrice(m.CommodityTicker, domain.PricePP7)
			}
			if !ok {
				slog.Debug("building material without price", "building", b.Ticker, "material", m.CommodityTicker)
				continue
			}
			cost += m.Amount * unit
		}

		buildings = append(buildings, domain.Building{
			Ticker:    b.Ticker,
			Name:      b.Name,
			Area:      b.AreaCost,
			BuildCost: cost,
		})
	}
	return buildings
}
