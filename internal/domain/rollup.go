package domain

import "math"

// RollupMetrics son las métricas acumuladas de una opción bajo un contexto
// de demanda concreto. Cada magnitud X se reporta dos veces: "*Needed"
// (escalada a lo que el padre realmente necesita) y "Total*" (a la
// capacidad nominal propia del nodo, para inspección standalone).
type RollupMetrics struct {
	DemandUnitsPerDay  float64 `json:"demandUnitsPerDay"`
	RunsPerDayRequired float64 `json:"runsPerDayRequired"`

	AreaNeeded     float64 `json:"areaNeeded"`
	TotalAreaPerDay float64 `json:"totalAreaPerDay"`

	BuildCostNeeded float64 `json:"buildCostNeeded"`
	TotalBuildCost  float64 `json:"totalBuildCost"`

	InputBuffer7Needed float64 `json:"inputBuffer7Needed"`
	TotalInputBuffer7  float64 `json:"totalInputBuffer7"`

	// Periodos de recuperación en días. nil cuando el profit base no es
	// positivo o el numerador no está disponible — nunca Inf ni NaN.
	ROINarrowDays           *float64 `json:"roiNarrowDays"`
	ROIBroadDays            *float64 `json:"roiBroadDays"`
	InputPaybackDays7Narrow *float64 `json:"inputPaybackDays7Narrow"`
	InputPaybackDays7Broad  *float64 `json:"inputPaybackDays7Broad"`

	TotalProfitPA float64 `json:"totalProfitPA"`
}

// PaybackDays devuelve cost/profitPerDay como periodo de recuperación.
// nil si el profit no es positivo o el coste no es un número usable:
// el caller nunca recibe una división por cero disfrazada de Infinity.
func PaybackDays(cost, profitPerDay float64) *float64 {
	if profitPerDay <= 0 {
		return nil
	}
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return nil
	}
	days := cost / profitPerDay
	return &days
}

// ProfitPerArea devuelve el ratio profit/área, la métrica primaria de
// ranking. 0 si el área no es positiva.
func ProfitPerArea(profitPerDay, areaPerDay float64) float64 {
	if areaPerDay <= 0 {
		return 0
	}
	return profitPerDay / areaPerDay
}
