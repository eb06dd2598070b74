package chain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/ports"
)

// Request son los parámetros de una evaluación.
type Request struct {
	Ticker string
	// Demand en unidades/día pedidas a la raíz. ≤0 usa la capacidad
	// nominal de cada opción.
	Demand     float64
	PriceField domain.PriceField
	Overrides  domain.Overrides
	// TopN limita la lista rankeada devuelta. ≤0 devuelve todo.
	TopN int
}

// Planner orquesta una evaluación completa: obtiene catálogos por los
// ports, corre enumerar → rollup → ranking y devuelve el Report. El engine
// en sí queda puro; el I/O vive aquí, antes de la resolución.
type Planner struct {
	recipes  ports.RecipeSource
	prices   ports.PriceSource
	storage  ports.Storage
	notifier ports.Notifier
	cfg      Config
}

// NewPlanner crea un Planner con las dependencias inyectadas. storage y
// notifier pueden ser nil (evaluación sin persistencia ni salida).
func NewPlanner(recipes ports.RecipeSource, prices ports.PriceSource, storage ports.Storage, notifier ports.Notifier, cfg Config) *Planner {
	return &Planner{
		recipes:  recipes,
		prices:   prices,
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Evaluate resuelve el ticker pedido y devuelve el report rankeado.
// "Sin escenarios" no es un error: el report vuelve con Options vacío.
func (p *Planner) Evaluate(ctx context.Context, req Request) (*domain.Report, error) {
	if req.Ticker == "" {
		return nil, fmt.Errorf("chain.Evaluate: empty ticker")
	}

	catalog, err := p.recipes.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain.Evaluate: fetch catalog: %w", err)
	}
	prices, err := p.prices.FetchPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain.Evaluate: fetch prices: %w", err)
	}

	cfg := p.cfg
	if req.PriceField != "" {
		cfg.PriceField = req.PriceField
	}
	engine := NewEngine(catalog, prices, req.Overrides, cfg)

	start := time.Now()
	raw := engine.Enumerate(req.Ticker)
	annotated := AnnotateAll(raw, req.Demand)
	ranked := Rank(annotated)
	condensed := Condense(ranked)

	slog.Debug("evaluation complete",
		"ticker", req.Ticker,
		"options", len(ranked),
		"condensed", len(condensed),
		"duration", time.Since(start).Round(time.Microsecond),
	)

	return &domain.Report{
		ID:          uuid.NewString(),
		Ticker:      req.Ticker,
		GeneratedAt: time.Now().UTC(),
		PriceField:  engine.field,
		Demand:      req.Demand,
		Options:     TopN(ranked, req.TopN),
		Condensed:   condensed,
		Tree:        engine.ResolveChain(req.Ticker),
	}, nil
}

// Run ejecuta una evaluación y notifica/persiste el resultado, al estilo de
// un ciclo completo. Los fallos de notifier/storage se degradan a warning:
// el report ya está calculado.
func (p *Planner) Run(ctx context.Context, req Request) (*domain.Report, error) {
	report, err := p.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}

	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	if p.storage != nil {
		if err := p.storage.SaveEvaluation(ctx, report); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}
	return report, nil
}
