package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/ports"
)

// Source envuelve un PriceSource base con el pipeline de suavizado: sobre
// cada snapshot calcula PP7/PP30 desde los trades históricos y mergea el
// resultado. Si el origen de trades falla, el snapshot crudo sigue siendo
// válido y se devuelve con un warning.
type Source struct {
	base     ports.PriceSource
	trades   ports.TradeSource
	smoother *Smoother
	now      func() time.Time
}

// NewSource crea un Source. trades puede ser nil: entonces el snapshot pasa
// sin suavizar.
func NewSource(base ports.PriceSource, trades ports.TradeSource, smoother *Smoother) *Source {
	if smoother == nil {
		smoother = NewSmoother(0, 0, 0)
	}
	return &Source{base: base, trades: trades, smoother: smoother, now: time.Now}
}

// FetchPrices implementa ports.PriceSource.
func (s *Source) FetchPrices(ctx context.Context) (domain.PriceCatalog, error) {
	snapshot, err := s.base.FetchPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("pricing.FetchPrices: %w", err)
	}
	if s.trades == nil {
		return snapshot, nil
	}

	now := s.now()
	since := now.AddDate(0, 0, -s.smoother.longWindowDays)
	trades, err := s.trades.FetchTrades(ctx, since)
	if err != nil {
		slog.Warn("trade fetch failed, using raw snapshot", "err", err)
		return snapshot, nil
	}

	return Merge(snapshot, s.smoother.Smooth(trades, now)), nil
}
