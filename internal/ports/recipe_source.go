package ports

import (
	"context"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// RecipeSource entrega el catálogo de recetas y edificios ya parseado.
// De dónde sale (API, bucket, fixtures) es asunto del adapter.
type RecipeSource interface {
	// FetchCatalog devuelve el catálogo completo, validado.
	FetchCatalog(ctx context.Context) (*domain.RecipeCatalog, error)
}
