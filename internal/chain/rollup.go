package chain

import "github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"

// Annotate aplica el rollup post-orden a una opción para la demanda
// (unidades/día) que el caller necesita de ella, y devuelve una COPIA
// anotada del árbol. El original no se muta: subárboles compartidos entre
// opciones alcanzados con demandas distintas se recomputan de forma
// independiente, porque sus magnitudes absolutas dependen de la demanda
// del caller.
//
// El patrón de métrica acumulada es idéntico para área, coste de
// construcción y buffer de inputs a 7 días (llamando X a la magnitud):
//
//	runsReq          = demanda ÷ outputAmount (0 si demanda 0)
//	scaledSelfNeeded = selfX × runsReq
//	childrenNeeded   = Σ XNeeded de los hijos MAKE, con la demanda que este
//	                   nodo impone a cada uno
//	childrenAtCap    = (childrenNeeded ÷ runsReq) × runsPerDay propio
//	TotalX           = selfX + childrenAtCap       (capacidad propia)
//	XNeeded          = scaledSelfNeeded + childrenNeeded (aporte al padre)
//
// Los inputs BUY son hojas: aportan su coste de lote al rollup de costes
// (vía COGM/buffer) pero no área ni coste de construcción.
func Annotate(opt *domain.MakeOption, demandUnitsPerDay float64) *domain.MakeOption {
	out := *opt
	out.Inputs = make([]domain.MadeInputDetail, len(opt.Inputs))

	rm := &domain.RollupMetrics{DemandUnitsPerDay: demandUnitsPerDay}

	var runsReq float64
	if demandUnitsPerDay > 0 && opt.OutputAmount > 0 {
		runsReq = demandUnitsPerDay / opt.OutputAmount
	}
	rm.RunsPerDayRequired = runsReq

	var childArea, childBuild, childBuffer float64
	for i, d := range opt.Inputs {
		nd := d
		if d.Source == domain.SourceMake && d.Child != nil {
			childDemand := d.Amount * runsReq
			annotated := Annotate(d.Child, childDemand)
			nd.Child = annotated
			nd.ChildDemandUnitsPerDay = childDemand
			nd.ChildRunsPerDayRequired = annotated.Rollup.RunsPerDayRequired

			childArea += annotated.Rollup.AreaNeeded
			childBuild += annotated.Rollup.BuildCostNeeded
			childBuffer += annotated.Rollup.InputBuffer7Needed
		} else {
			nd.TotalCostPerBatch = d.CostPerBatch * runsReq
		}
		out.Inputs[i] = nd
	}

	// Re-expresa lo que necesitan los hijos a la escala de capacidad
	// nominal de este nodo.
	atCapacity := func(needed float64) float64 {
		if runsReq <= 0 {
			return 0
		}
		return needed / runsReq * opt.RunsPerDay
	}

	rm.AreaNeeded = opt.SelfAreaPerDay*runsReq + childArea
	rm.TotalAreaPerDay = opt.SelfAreaPerDay + atCapacity(childArea)

	rm.BuildCostNeeded = opt.SelfBuildCost*runsReq + childBuild
	rm.TotalBuildCost = opt.SelfBuildCost + atCapacity(childBuild)

	rm.InputBuffer7Needed = opt.SelfInputBuffer7*runsReq + childBuffer
	rm.TotalInputBuffer7 = opt.SelfInputBuffer7 + atCapacity(childBuffer)

	rm.ROINarrowDays = domain.PaybackDays(opt.SelfBuildCost, opt.BaseProfitPerDay)
	rm.ROIBroadDays = domain.PaybackDays(rm.TotalBuildCost, opt.BaseProfitPerDay)
	rm.InputPaybackDays7Narrow = domain.PaybackDays(opt.SelfInputBuffer7, opt.BaseProfitPerDay)
	rm.InputPaybackDays7Broad = domain.PaybackDays(rm.TotalInputBuffer7, opt.BaseProfitPerDay)

	rm.TotalProfitPA = domain.ProfitPerArea(opt.ProfitPerDay, rm.TotalAreaPerDay)

	out.Rollup = rm
	return &out
}

// AnnotateAll anota cada opción raíz. demand=0 usa la capacidad nominal
// propia de cada opción como demanda objetivo (el default del request).
func AnnotateAll(opts []*domain.MakeOption, demand float64) []*domain.MakeOption {
	out := make([]*domain.MakeOption, len(opts))
	for i, o := range opts {
		d := demand
		if d <= 0 {
			d = o.NominalDemand()
		}
		out[i] = Annotate(o, d)
	}
	return out
}
