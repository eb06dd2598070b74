package domain

import "strings"

// Overrides es el conjunto de directivas del usuario para una resolución:
// tickers forzados a comprar/fabricar, recetas forzadas/excluidas y la tabla
// de "mejor receta por ticker". Se pasa por valor en cada llamada recursiva
// y se trata como inmutable — nunca estado compartido de módulo.
type Overrides struct {
	ForceMake     map[string]bool   // ticker → siempre fabricar (BUY inadmisible)
	ForceBuy      map[string]bool   // ticker → siempre comprar (MAKE inadmisible)
	ForceRecipe   map[string]bool   // recipe ID → única receta admisible para su ticker
	ExcludeRecipe map[string]bool   // recipe ID → nunca considerar
	BestRecipe    map[string]string // ticker → recipe ID preferido (para el resolver)
}

// NoOverrides devuelve el conjunto vacío: sin restricciones.
func NoOverrides() Overrides {
	return Overrides{
		ForceMake:     map[string]bool{},
		ForceBuy:      map[string]bool{},
		ForceRecipe:   map[string]bool{},
		ExcludeRecipe: map[string]bool{},
		BestRecipe:    map[string]string{},
	}
}

// ParseOverrides construye el conjunto desde listas separadas por comas,
// tal como llegan en la query string. bestRecipe usa pares "TICKER=RECIPE_ID".
// Entradas vacías o malformadas se ignoran en silencio: ausente ⇒ vacío.
func ParseOverrides(forceMake, forceBuy, forceRecipe, excludeRecipe, bestRecipe string) Overrides {
	ov := NoOverrides()
	for _, t := range splitList(forceMake) {
		ov.ForceMake[t] = true
	}
	for _, t := range splitList(forceBuy) {
		ov.ForceBuy[t] = true
	}
	for _, id := range splitList(forceRecipe) {
		ov.ForceRecipe[id] = true
	}
	for _, id := range splitList(excludeRecipe) {
		ov.ExcludeRecipe[id] = true
	}
	for _, pair := range splitList(bestRecipe) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" || v == "" {
			continue
		}
		ov.BestRecipe[k] = v
	}
	return ov
}

// splitList divide una lista separada por comas, normalizando a mayúsculas.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ForcedMake indica si el ticker debe fabricarse obligatoriamente.
func (o Overrides) ForcedMake(ticker string) bool { return o.ForceMake[ticker] }

// ForcedBuy indica si el ticker debe comprarse obligatoriamente.
func (o Overrides) ForcedBuy(ticker string) bool { return o.ForceBuy[ticker] }

// RecipeForced indica si la receta está en el conjunto de forzadas.
func (o Overrides) RecipeForced(id string) bool { return o.ForceRecipe[id] }

// RecipeExcluded indica si la receta está excluida.
func (o Overrides) RecipeExcluded(id string) bool { return o.ExcludeRecipe[id] }

// BestRecipeFor devuelve la receta preferida para el ticker, si hay override.
func (o Overrides) BestRecipeFor(ticker string) (string, bool) {
	id, ok := o.BestRecipe[ticker]
	return id, ok
}
