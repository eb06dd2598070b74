package chain

import "github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"

// Enumerate devuelve todas las MakeOption alcanzables para el ticker bajo
// los overrides: por cada receta admisible, y por cada input de esa receta,
// evalúa comprar y fabricar, expandiendo el producto cartesiano completo de
// elecciones admisibles. Un ticker sin receta admisible devuelve el
// conjunto vacío — nunca un error.
//
// El orden es determinista: recetas en orden de catálogo, inputs en orden
// de receta, y por input primero BUY y después cada sub-opción MAKE en su
// propio orden de enumeración.
func (e *Engine) Enumerate(ticker string) []*domain.MakeOption {
	return e.enumerate(ticker, nil, 0)
}

func (e *Engine) enumerate(ticker string, path []string, depth int) []*domain.MakeOption {
	// Guard de recursión: el ciclo o el límite de profundidad convierten
	// esta rama en irresoluble; el caller cae a BUY si puede.
	if depth > e.maxDepth || onPath(path, ticker) {
		return nil
	}

	recipes := e.admissibleRecipes(ticker)
	if len(recipes) == 0 {
		return nil
	}

	// Precio de venta del output. Sin dato ⇒ 0: el profit sale negativo y
	// los ROI quedan en nil, pero la enumeración no se corta.
	sell, _ := e.prices.UnitPrice(ticker, e.field)

	childPath := append(path[:len(path):len(path)], ticker)

	var opts []*domain.MakeOption
	for _, recipe := range recipes {
		building, ok := e.catalog.Building(recipe.Building)
		if !ok {
			continue // el catálogo validado no debería llegar aquí
		}

		choices, feasible := e.inputChoices(recipe, childPath, depth)
		if !feasible {
			continue
		}

		for _, combo := range cartesian(choices) {
			opts = append(opts, e.buildOption(recipe, building, sell, combo))
		}
	}
	return opts
}

// inputChoices calcula, para cada input de la receta, sus resoluciones
// admisibles. feasible=false si algún input se queda sin ninguna (p.ej.
// forzado a fabricar dentro de un ciclo, o sin precio para comprar).
func (e *Engine) inputChoices(recipe domain.Recipe, path []string, depth int) ([][]domain.MadeInputDetail, bool) {
	choices := make([][]domain.MadeInputDetail, len(recipe.Inputs))

	for i, in := range recipe.Inputs {
		var alts []domain.MadeInputDetail

		// BUY: admisible salvo forceMake. Sin precio usable, la opción se
		// excluye — nunca se costea a cero en silencio.
		if !e.ov.ForcedMake(in.Ticker) {
			if unit, ok := e.prices.UnitPrice(in.Ticker, e.field); ok {
				alts = append(alts, domain.MadeInputDetail{
					Ticker:       in.Ticker,
					Amount:       in.Amount,
					Source:       domain.SourceBuy,
					UnitCost:     unit,
					CostPerBatch: in.Amount * unit,
				})
			}
		}

		// MAKE: admisible salvo forceBuy o materia prima sin recetas. Un
		// ciclo hace que la recursión devuelva vacío y la rama queda
		// BUY-only.
		if !e.ov.ForcedBuy(in.Ticker) && e.catalog.HasRecipes(in.Ticker) {
			for _, child := range e.enumerate(in.Ticker, path, depth+1) {
				alts = append(alts, domain.MadeInputDetail{
					Ticker:        in.Ticker,
					Amount:        in.Amount,
					Source:        domain.SourceMake,
					Child:         child,
					ChildRecipeID: child.RecipeID,
					ChildScenario: child.Scenario,
				})
			}
		}

		if len(alts) == 0 {
			return nil, false
		}
		choices[i] = alts
	}
	return choices, true
}

// cartesian expande el producto cartesiano de las elecciones por input.
// La expansión completa es intencional: el caller quiere todos los
// escenarios. El límite efectivo es el depth cap del engine.
func cartesian(choices [][]domain.MadeInputDetail) [][]domain.MadeInputDetail {
	if len(choices) == 0 {
		return [][]domain.MadeInputDetail{nil}
	}

	total := 1
	for _, c := range choices {
		total *= len(c)
	}

	combos := make([][]domain.MadeInputDetail, 0, total)
	idx := make([]int, len(choices))
	for {
		combo := make([]domain.MadeInputDetail, len(choices))
		for i, j := range idx {
			combo[i] = choices[i][j]
		}
		combos = append(combos, combo)

		// Odómetro: avanza el último índice con acarreo.
		k := len(idx) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(choices[k]) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			return combos
		}
	}
}

// buildOption construye la MakeOption con sus métricas propias a partir de
// la receta, el edificio y la combinación de inputs elegida.
func (e *Engine) buildOption(recipe domain.Recipe, building domain.Building, sell float64, combo []domain.MadeInputDetail) *domain.MakeOption {
	var inputCost float64
	decisions := make([]domain.Decision, len(combo))
	for i, d := range combo {
		if d.Source == domain.SourceBuy {
			inputCost += d.CostPerBatch
			decisions[i] = domain.BuyDecision(d.Ticker)
		} else {
			// Coste de fabricar el input: su COGM por unidad.
			inputCost += d.Amount * d.Child.CogmPerOutput
			decisions[i] = d.Child.Decision
		}
	}

	cogm := inputCost / recipe.OutputAmount
	base := (sell - cogm) * recipe.OutputAmount * recipe.RunsPerDay
	decision := domain.MakeDecision(recipe.Ticker, recipe.ID, decisions)

	return &domain.MakeOption{
		Ticker:           recipe.Ticker,
		RecipeID:         recipe.ID,
		Building:         building.Ticker,
		OutputAmount:     recipe.OutputAmount,
		RunsPerDay:       recipe.RunsPerDay,
		SellPrice:        sell,
		SelfAreaPerDay:   building.Area / recipe.OutputAmount,
		SelfBuildCost:    building.BuildCost,
		SelfInputBuffer7: 7 * inputCost,
		InputCostPerRun:  inputCost,
		CogmPerOutput:    cogm,
		BaseProfitPerDay: base,
		ProfitPerDay:     base * (1 - e.overhead),
		Scenario:         decision.Scenario(),
		Decision:         decision,
		Inputs:           combo,
	}
}
