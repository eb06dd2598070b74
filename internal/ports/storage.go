package ports

import (
	"context"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// Storage persiste precios, trades y resúmenes de evaluación. Es histórico
// de solo escritura para diagnóstico: las cadenas resueltas nunca se
// cachean entre evaluaciones.
type Storage interface {
	// SaveEvaluation persiste el resumen de un report.
	SaveEvaluation(ctx context.Context, report *domain.Report) error

	// SavePrices hace upsert del snapshot de precios.
	SavePrices(ctx context.Context, prices domain.PriceCatalog) error

	// SaveTrades añade operaciones crudas para el suavizado histórico.
	SaveTrades(ctx context.Context, trades []domain.Trade) error

	// Close cierra la conexión limpiamente.
	Close() error
}
