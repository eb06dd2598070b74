package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// makeOption devuelve la opción C_1[make:HCP_1[buy:H2O]] del fixture.
func makeOption(t *testing.T) *domain.MakeOption {
	t.Helper()
	opts := newTestEngine(t, domain.NoOverrides()).Enumerate("C")
	require.Len(t, opts, 2)
	return opts[1]
}

func TestAnnotate_WorkedExample(t *testing.T) {
	// demanda = capacidad nominal de C_1: 1 × 2 = 2 unidades/día
	opt := Annotate(makeOption(t), 2)
	rm := opt.Rollup
	require.NotNil(t, rm)

	assert.Equal(t, 2.0, rm.DemandUnitsPerDay)
	assert.Equal(t, 2.0, rm.RunsPerDayRequired) // 2 ÷ 1

	// hijo HCP: demanda 1×2 = 2 HCP/día ⇒ 1 run/día de HCP_1
	require.Len(t, opt.Inputs, 1)
	child := opt.Inputs[0].Child
	require.NotNil(t, child.Rollup)
	assert.Equal(t, 2.0, opt.Inputs[0].ChildDemandUnitsPerDay)
	assert.Equal(t, 1.0, child.Rollup.RunsPerDayRequired)

	// hoja BUY del hijo: coste por lote escalado a sus runs requeridos
	require.Len(t, child.Inputs, 1)
	assert.Equal(t, 2.0, child.Inputs[0].CostPerBatch)      // 2 × 1.0 un run
	assert.Equal(t, 2.0, child.Inputs[0].TotalCostPerBatch) // × 1 run/día

	// área: self 30×2 + hijo 10×1 = 70 necesaria; 30 + 10 a capacidad
	assert.Equal(t, 70.0, rm.AreaNeeded)
	assert.Equal(t, 40.0, rm.TotalAreaPerDay)

	// coste de construcción: 300×2 + 100 = 700; total 300 + 100 = 400
	assert.Equal(t, 700.0, rm.BuildCostNeeded)
	assert.Equal(t, 400.0, rm.TotalBuildCost)

	// buffer 7d: self 7×1=7 por run ⇒ 14 necesarias + 14 del hijo = 28
	assert.Equal(t, 28.0, rm.InputBuffer7Needed)
	assert.Equal(t, 21.0, rm.TotalInputBuffer7)

	// paybacks sobre el profit base (38/día)
	require.NotNil(t, rm.ROINarrowDays)
	assert.InDelta(t, 300.0/38.0, *rm.ROINarrowDays, 1e-9)
	require.NotNil(t, rm.ROIBroadDays)
	assert.InDelta(t, 400.0/38.0, *rm.ROIBroadDays, 1e-9)
	require.NotNil(t, rm.InputPaybackDays7Narrow)
	assert.InDelta(t, 7.0/38.0, *rm.InputPaybackDays7Narrow, 1e-9)
	require.NotNil(t, rm.InputPaybackDays7Broad)
	assert.InDelta(t, 21.0/38.0, *rm.InputPaybackDays7Broad, 1e-9)

	assert.InDelta(t, 38.0/40.0, rm.TotalProfitPA, 1e-9)
}

func TestAnnotate_BroadNeverBelowNarrow(t *testing.T) {
	opt := Annotate(makeOption(t), 2)
	rm := opt.Rollup

	// con al menos un hijo MAKE, el total siempre excede lo propio
	assert.Greater(t, rm.TotalBuildCost, opt.SelfBuildCost)
	assert.Greater(t, rm.TotalAreaPerDay, opt.SelfAreaPerDay)
	assert.GreaterOrEqual(t, *rm.ROIBroadDays, *rm.ROINarrowDays)
	assert.GreaterOrEqual(t, *rm.InputPaybackDays7Broad, *rm.InputPaybackDays7Narrow)
}

func TestAnnotate_LinearScaling(t *testing.T) {
	opt := makeOption(t)
	at2 := Annotate(opt, 2).Rollup
	at4 := Annotate(opt, 4).Rollup

	// las magnitudes *Needed escalan linealmente con la demanda
	assert.InDelta(t, 2*at2.AreaNeeded, at4.AreaNeeded, 1e-9)
	assert.InDelta(t, 2*at2.BuildCostNeeded, at4.BuildCostNeeded, 1e-9)
	assert.InDelta(t, 2*at2.InputBuffer7Needed, at4.InputBuffer7Needed, 1e-9)
	assert.InDelta(t, 2*at2.RunsPerDayRequired, at4.RunsPerDayRequired, 1e-9)

	// las Total* son a capacidad nominal: no dependen de la demanda
	assert.Equal(t, at2.TotalAreaPerDay, at4.TotalAreaPerDay)
	assert.Equal(t, at2.TotalBuildCost, at4.TotalBuildCost)
	assert.Equal(t, at2.TotalInputBuffer7, at4.TotalInputBuffer7)
	assert.Equal(t, at2.TotalProfitPA, at4.TotalProfitPA)
}

func TestAnnotate_Idempotent(t *testing.T) {
	opt := makeOption(t)

	first := Annotate(opt, 2)
	second := Annotate(opt, 2)

	// el original no se muta: anotar dos veces da lo mismo
	assert.Nil(t, opt.Rollup)
	assert.Equal(t, first.Rollup, second.Rollup)
	assert.Equal(t, first.Inputs[0].Child.Rollup, second.Inputs[0].Child.Rollup)

	// re-anotar la copia anotada tampoco cambia nada
	third := Annotate(first, 2)
	assert.Equal(t, first.Rollup, third.Rollup)
}

func TestAnnotate_SharedSubtreeIndependentDemands(t *testing.T) {
	opts := newTestEngine(t, domain.NoOverrides()).Enumerate("C")
	mk := opts[1]

	a := Annotate(mk, 2)
	b := Annotate(mk, 10)

	// los dos rollups del hijo compartido son independientes
	assert.Equal(t, 1.0, a.Inputs[0].Child.Rollup.RunsPerDayRequired)
	assert.Equal(t, 5.0, b.Inputs[0].Child.Rollup.RunsPerDayRequired)
}

func TestAnnotate_ZeroDemand(t *testing.T) {
	rm := Annotate(makeOption(t), 0).Rollup

	assert.Equal(t, 0.0, rm.RunsPerDayRequired)
	assert.Equal(t, 0.0, rm.AreaNeeded)
	// la self total sigue definida aunque nadie pida nada
	assert.Equal(t, 30.0, rm.TotalAreaPerDay)
}

func TestAnnotateAll_DefaultsToNominalDemand(t *testing.T) {
	opts := newTestEngine(t, domain.NoOverrides()).Enumerate("C")
	annotated := AnnotateAll(opts, 0)

	require.Len(t, annotated, 2)
	for _, o := range annotated {
		assert.Equal(t, o.NominalDemand(), o.Rollup.DemandUnitsPerDay)
		assert.Equal(t, o.RunsPerDay, o.Rollup.RunsPerDayRequired)
	}
}

func TestAnnotate_NegativeProfitNilPaybacks(t *testing.T) {
	prices := testPrices()
	prices["C"] = domain.Price{PP7: domain.Float(0.5)} // vender por debajo del coste
	e := NewEngine(testCatalog(t), prices, domain.NoOverrides(), Config{PriceField: domain.PricePP7})

	opts := AnnotateAll(e.Enumerate("C"), 0)
	require.NotEmpty(t, opts)
	rm := opts[0].Rollup
	assert.Nil(t, rm.ROINarrowDays)
	assert.Nil(t, rm.ROIBroadDays)
	assert.Nil(t, rm.InputPaybackDays7Narrow)
	assert.Nil(t, rm.InputPaybackDays7Broad)
	assert.Negative(t, rm.TotalProfitPA)
}
