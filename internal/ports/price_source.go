package ports

import (
	"context"
	"time"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// PriceSource entrega el catálogo de precios por ticker.
type PriceSource interface {
	// FetchPrices devuelve el snapshot de precios actual.
	FetchPrices(ctx context.Context) (domain.PriceCatalog, error)
}

// TradeSource entrega operaciones crudas de mercado para el pipeline de
// suavizado de precios.
type TradeSource interface {
	// FetchTrades devuelve las operaciones desde el instante dado.
	FetchTrades(ctx context.Context, since time.Time) ([]domain.Trade, error)
}
