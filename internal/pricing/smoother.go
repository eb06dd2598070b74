// Package pricing implementa el pipeline batch que convierte operaciones
// crudas de mercado en precios suavizados (media ponderada por volumen a 7
// y 30 días con recorte de outliers). El engine de cadenas solo consume el
// número resultante; nunca recalcula nada de esto.
package pricing

import (
	"sort"
	"time"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

const (
	defaultWindowDays     = 7
	defaultLongWindowDays = 30
	// defaultClipFactor descarta trades cuyo precio se aleja más de 3× de
	// la mediana ponderada por volumen de la ventana.
	defaultClipFactor = 3.0
)

// Smoother calcula precios suavizados por ticker.
type Smoother struct {
	windowDays     int
	longWindowDays int
	clipFactor     float64
}

// NewSmoother crea un Smoother. Valores ≤0 usan los defaults (7d, 30d, 3×).
func NewSmoother(windowDays, longWindowDays int, clipFactor float64) *Smoother {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	if longWindowDays <= 0 {
		longWindowDays = defaultLongWindowDays
	}
	if clipFactor <= 1 {
		clipFactor = defaultClipFactor
	}
	return &Smoother{windowDays: windowDays, longWindowDays: longWindowDays, clipFactor: clipFactor}
}

// Smooth agrupa los trades por ticker y devuelve PP7/PP30 por ticker.
// Tickers sin volumen usable en una ventana quedan con ese campo en nil.
func (s *Smoother) Smooth(trades []domain.Trade, now time.Time) domain.PriceCatalog {
	byTicker := make(map[string][]domain.Trade)
	for _, t := range trades {
		if t.Ticker == "" || t.Price <= 0 || t.Volume <= 0 {
			continue
		}
		byTicker[t.Ticker] = append(byTicker[t.Ticker], t)
	}

	out := make(domain.PriceCatalog, len(byTicker))
	for ticker, ts := range byTicker {
		var p domain.Price
		if v, ok := s.windowVWAP(ts, now, s.windowDays); ok {
			p.PP7 = domain.Float(v)
		}
		if v, ok := s.windowVWAP(ts, now, s.longWindowDays); ok {
			p.PP30 = domain.Float(v)
		}
		out[ticker] = p
	}
	return out
}

// windowVWAP calcula la media ponderada por volumen de la ventana, tras
// recortar los outliers contra la mediana ponderada.
func (s *Smoother) windowVWAP(trades []domain.Trade, now time.Time, days int) (float64, bool) {
	cutoff := now.AddDate(0, 0, -days)

	var window []domain.Trade
	for _, t := range trades {
		if !t.TradedAt.Before(cutoff) && !t.TradedAt.After(now) {
			window = append(window, t)
		}
	}
	if len(window) == 0 {
		return 0, false
	}

	med := weightedMedian(window)
	var sumPV, sumV float64
	for _, t := range window {
		if med > 0 && (t.Price > med*s.clipFactor || t.Price < med/s.clipFactor) {
			continue // outlier: fuera del cálculo, no se costea
		}
		sumPV += t.Price * t.Volume
		sumV += t.Volume
	}
	if sumV <= 0 {
		return 0, false
	}
	return sumPV / sumV, true
}

// weightedMedian devuelve el precio en el que se acumula la mitad del
// volumen de la ventana.
func weightedMedian(trades []domain.Trade) float64 {
	sorted := make([]domain.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	var total float64
	for _, t := range sorted {
		total += t.Volume
	}

	var acc float64
	for _, t := range sorted {
		acc += t.Volume
		if acc >= total/2 {
			return t.Price
		}
	}
	return sorted[len(sorted)-1].Price
}

// Merge combina el snapshot de exchange (bid/ask) con los precios
// suavizados (pp7/pp30) en un único catálogo. Los campos suavizados
// sobreescriben a los del snapshot si ambos existen.
func Merge(snapshot, smoothed domain.PriceCatalog) domain.PriceCatalog {
	out := make(domain.PriceCatalog, len(snapshot))
	for ticker, p := range snapshot {
		out[ticker] = p
	}
	for ticker, sm := range smoothed {
		p := out[ticker]
		if sm.PP7 != nil {
			p.PP7 = sm.PP7
		}
		if sm.PP30 != nil {
			p.PP30 = sm.PP30
		}
		out[ticker] = p
	}
	return out
}
