package chain

import "github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"

// Mensajes de las hojas de error del árbol de cadena. Cada modo de fallo
// tiene su mensaje propio para que la capa de presentación los distinga.
const (
	errNoRecipe = "no recipe found"
	errCircular = "circular dependency detected"
	errMaxDepth = "max depth exceeded"
)

// ResolveChain construye el árbol solo-MAKE del ticker raíz, eligiendo una
// receta por ticker y recursando en sus inputs. Los nodos irresolubles
// (sin receta, ciclo, profundidad) se marcan como hojas de error sin
// abortar el resto del árbol. Función pura de (ticker, catálogo, overrides).
func (e *Engine) ResolveChain(ticker string) *domain.ChainNode {
	return e.resolveChain(ticker, 0, nil, 0)
}

// resolveChain es la recursión con el set de visitados por camino pasado
// como parámetro explícito (nunca estructura mutable compartida).
func (e *Engine) resolveChain(ticker string, amountPerRun float64, path []string, depth int) *domain.ChainNode {
	node := &domain.ChainNode{Ticker: ticker, AmountPerRun: amountPerRun}

	if depth > e.maxDepth {
		node.IsError = true
		node.ErrorMessage = errMaxDepth
		return node
	}
	if onPath(path, ticker) {
		node.IsError = true
		node.ErrorMessage = errCircular
		return node
	}

	recipe, ok := e.pickRecipe(ticker)
	if !ok {
		node.IsError = true
		node.ErrorMessage = errNoRecipe
		return node
	}

	node.RecipeID = recipe.ID
	node.Building = recipe.Building

	// Copia estable del camino: los hermanos no deben ver este ticker.
	childPath := append(path[:len(path):len(path)], ticker)
	for _, in := range recipe.Inputs {
		node.Inputs = append(node.Inputs, e.resolveChain(in.Ticker, in.Amount, childPath, depth+1))
	}
	return node
}

// pickRecipe elige la receta de un ticker según la prioridad documentada:
//  1. receta forzada en los overrides que pertenezca a este ticker (y no
//     esté a la vez excluida);
//  2. override "mejor receta por ticker", si existe en el catálogo;
//  3. la primera receta no excluida en orden de inserción del catálogo.
func (e *Engine) pickRecipe(ticker string) (domain.Recipe, bool) {
	all := e.catalog.Recipes(ticker)

	for _, r := range all {
		if e.ov.RecipeForced(r.ID) && !e.ov.RecipeExcluded(r.ID) {
			return r, true
		}
	}

	if id, ok := e.ov.BestRecipeFor(ticker); ok {
		if r, found := e.catalog.Recipe(id); found && r.Ticker == ticker && !e.ov.RecipeExcluded(r.ID) {
			return r, true
		}
	}

	for _, r := range all {
		if !e.ov.RecipeExcluded(r.ID) {
			return r, true
		}
	}
	return domain.Recipe{}, false
}
