package domain

import "fmt"

// RecipeInput es un par (ticker, cantidad) consumido por una receta en cada run.
type RecipeInput struct {
	Ticker string  `json:"ticker"`
	Amount float64 `json:"amount"`
}

// Recipe describe una transformación de materiales en un edificio concreto.
// El ID es estable con la forma "TICKER_N" (N = posición en el catálogo).
type Recipe struct {
	ID           string        `json:"recipeId"`
	Ticker       string        `json:"ticker"` // material de salida principal
	Building     string        `json:"building"`
	OutputAmount float64       `json:"outputAmount"` // unidades producidas por run
	RunsPerDay   float64       `json:"runsPerDay"`   // capacidad a eficiencia 100%
	Inputs       []RecipeInput `json:"inputs"`
	Secondary    []RecipeInput `json:"secondary,omitempty"` // salidas secundarias, si las hay
}

// Building contiene los costes fijos de un edificio de producción.
// Las recetas lo referencian por ticker; nunca es dueño de ellas.
type Building struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name,omitempty"`
	Area      float64 `json:"area"`      // superficie ocupada
	BuildCost float64 `json:"buildCost"` // coste de capital de construcción
}

// RecipeCatalog es el catálogo inmutable de recetas y edificios.
// Mantiene el orden de inserción por ticker: ese orden define la receta
// "por defecto" cuando no hay overrides (decisión documentada en DESIGN.md).
type RecipeCatalog struct {
	byTicker  map[string][]Recipe
	byID      map[string]Recipe
	buildings map[string]Building
}

// NewRecipeCatalog construye y valida el catálogo. La validación es la única
// condición fatal del sistema: cantidades no positivas o referencias rotas
// fallan aquí, nunca dentro del engine.
func NewRecipeCatalog(recipes []Recipe, buildings []Building) (*RecipeCatalog, error) {
	c := &RecipeCatalog{
		byTicker:  make(map[string][]Recipe),
		byID:      make(map[string]Recipe),
		buildings: make(map[string]Building, len(buildings)),
	}

	for _, b := range buildings {
		if b.Ticker == "" {
			return nil, fmt.Errorf("domain.NewRecipeCatalog: building without ticker")
		}
		if b.Area < 0 || b.BuildCost < 0 {
			return nil, fmt.Errorf("domain.NewRecipeCatalog: building %s: negative area or cost", b.Ticker)
		}
		c.buildings[b.Ticker] = b
	}

	for _, r := range recipes {
		if err := validateRecipe(r, c.buildings); err != nil {
			return nil, fmt.Errorf("domain.NewRecipeCatalog: %w", err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("domain.NewRecipeCatalog: duplicate recipe id %s", r.ID)
		}
		c.byID[r.ID] = r
		c.byTicker[r.Ticker] = append(c.byTicker[r.Ticker], r)
	}

	return c, nil
}

// validateRecipe comprueba la forma de una receta antes de admitirla.
func validateRecipe(r Recipe, buildings map[string]Building) error {
	if r.ID == "" || r.Ticker == "" {
		return fmt.Errorf("recipe %q: missing id or ticker", r.ID)
	}
	if r.OutputAmount <= 0 {
		return fmt.Errorf("recipe %s: output amount must be positive, got %v", r.ID, r.OutputAmount)
	}
	if r.RunsPerDay <= 0 {
		return fmt.Errorf("recipe %s: runs per day must be positive, got %v", r.ID, r.RunsPerDay)
	}
	if _, ok := buildings[r.Building]; !ok {
		return fmt.Errorf("recipe %s: unknown building %s", r.ID, r.Building)
	}
	for _, in := range r.Inputs {
		if in.Ticker == "" {
			return fmt.Errorf("recipe %s: input without ticker", r.ID)
		}
		if in.Amount <= 0 {
			return fmt.Errorf("recipe %s: input %s amount must be positive, got %v", r.ID, in.Ticker, in.Amount)
		}
	}
	return nil
}

// Recipes devuelve las recetas de un ticker en orden de catálogo.
// Slice vacío si es materia prima (sin recetas).
func (c *RecipeCatalog) Recipes(ticker string) []Recipe {
	return c.byTicker[ticker]
}

// Recipe busca una receta por su ID estable.
func (c *RecipeCatalog) Recipe(id string) (Recipe, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Building busca un edificio por ticker.
func (c *RecipeCatalog) Building(ticker string) (Building, bool) {
	b, ok := c.buildings[ticker]
	return b, ok
}

// HasRecipes indica si el ticker tiene al menos una receta (es manufacturable).
func (c *RecipeCatalog) HasRecipes(ticker string) bool {
	return len(c.byTicker[ticker]) > 0
}

// Len devuelve el número total de recetas del catálogo.
func (c *RecipeCatalog) Len() int {
	return len(c.byID)
}
