// Package chain implementa el núcleo del sistema: la resolución recursiva
// de cadenas de producción (comprar vs. fabricar cada ingrediente), el
// rollup de métricas acumuladas y el ranking por profit/área.
//
// Todo el paquete es puro y síncrono: cada llamada recibe catálogos y
// overrides inmutables y devuelve estructuras recién alocadas. Resoluciones
// concurrentes para distintos tickers no comparten estado alguno.
package chain

import "github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"

const (
	// defaultMaxDepth es la red de seguridad contra catálogos patológicos.
	// El guard por camino (visited set) detecta los ciclos reales; esto
	// solo acota la profundidad total.
	defaultMaxDepth = 20
)

// Config contiene los parámetros de una resolución.
type Config struct {
	// PriceField selecciona el precio usado para comprar inputs y vender
	// el output (bid/ask/pp7/pp30).
	PriceField domain.PriceField
	// OverheadRate descuenta overhead (workforce, administración) del
	// profit base: profitPerDay = base × (1 − rate). 0 = sin ajuste.
	OverheadRate float64
	// MaxDepth acota la recursión. ≤0 usa el default (20).
	MaxDepth int
}

// Engine resuelve cadenas de producción sobre un par de catálogos fijos.
// No guarda nada entre llamadas: es seguro compartirlo entre goroutines.
type Engine struct {
	catalog  *domain.RecipeCatalog
	prices   domain.PriceCatalog
	ov       domain.Overrides
	field    domain.PriceField
	overhead float64
	maxDepth int
}

// NewEngine crea un Engine para una resolución con los catálogos y
// overrides dados.
func NewEngine(catalog *domain.RecipeCatalog, prices domain.PriceCatalog, ov domain.Overrides, cfg Config) *Engine {
	field := cfg.PriceField
	if field == "" {
		field = domain.PricePP7
	}
	depth := cfg.MaxDepth
	if depth <= 0 {
		depth = defaultMaxDepth
	}
	overhead := cfg.OverheadRate
	if overhead < 0 || overhead >= 1 {
		overhead = 0
	}
	return &Engine{
		catalog:  catalog,
		prices:   prices,
		ov:       ov,
		field:    field,
		overhead: overhead,
		maxDepth: depth,
	}
}

// admissibleRecipes devuelve las recetas de un ticker que los overrides
// permiten considerar, en orden de catálogo. Si alguna receta del ticker
// está forzada, el resultado se restringe a las forzadas (no excluidas).
func (e *Engine) admissibleRecipes(ticker string) []domain.Recipe {
	all := e.catalog.Recipes(ticker)

	var forced []domain.Recipe
	for _, r := range all {
		if e.ov.RecipeForced(r.ID) && !e.ov.RecipeExcluded(r.ID) {
			forced = append(forced, r)
		}
	}
	if len(forced) > 0 {
		return forced
	}

	out := make([]domain.Recipe, 0, len(all))
	for _, r := range all {
		if !e.ov.RecipeExcluded(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// onPath indica si el ticker ya está en el camino raíz→nodo actual.
func onPath(path []string, ticker string) bool {
	for _, t := range path {
		if t == ticker {
			return true
		}
	}
	return false
}
