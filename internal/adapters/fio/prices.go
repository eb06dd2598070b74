package fio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

const exchangePath = "/exchange/full"

// Exchange preferido cuando un material cotiza en varios. Configurable en
// el constructor si algún día hace falta; hoy el sitio solo mira uno.
const defaultExchange = "AI1"

// FetchPrices implementa ports.PriceSource: descarga el snapshot del
// exchange y lo reduce a un precio por ticker. PriceAverage del exchange
// rellena pp7 como aproximación hasta que el pipeline de suavizado propio
// lo sobreescriba (ver internal/pricing).
func (c *Client) FetchPrices(ctx context.Context) (domain.PriceCatalog, error) {
	var raw []fioExchangeEntry
	if err := c.get(ctx, c.exchangeLimiter, exchangePath, &raw); err != nil {
		return nil, fmt.Errorf("fio.FetchPrices: %w", err)
	}

	out := make(domain.PriceCatalog)
	for _, e := range raw {
		if e.MaterialTicker == "" || e.ExchangeCode != defaultExchange {
			continue
		}
		out[e.MaterialTicker] = domain.Price{
			Bid:  e.Bid,
			Ask:  e.Ask,
			PP7:  e.PriceAverage,
			PP30: e.PriceAverage,
		}
	}

	slog.Debug("fio prices loaded", "tickers", len(out), "exchange", defaultExchange)
	return out, nil
}
