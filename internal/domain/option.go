package domain

import "time"

// InputSource marca cómo se resolvió un input: compra en mercado o
// fabricación recursiva.
type InputSource string

const (
	SourceBuy  InputSource = "BUY"
	SourceMake InputSource = "MAKE"
)

// MadeInputDetail registra la resolución de un input concreto de una opción.
// Los campos Child* y TotalCostPerBatch dependen de la demanda del padre y
// los rellena el rollup; el enumerador deja las cantidades por run.
type MadeInputDetail struct {
	Ticker string      `json:"ticker"`
	Amount float64     `json:"amountNeeded"` // unidades por run del padre
	Source InputSource `json:"source"`

	// BUY
	UnitCost     float64 `json:"unitCost,omitempty"`
	CostPerBatch float64 `json:"costPerBatch,omitempty"` // Amount × UnitCost, un run
	// TotalCostPerBatch = CostPerBatch × runs/día requeridos al padre.
	TotalCostPerBatch float64 `json:"totalCostPerBatch,omitempty"`

	// MAKE
	Child                   *MakeOption `json:"details,omitempty"`
	ChildScenario           string      `json:"childScenario,omitempty"`
	ChildRecipeID           string      `json:"recipeId,omitempty"`
	ChildRunsPerDayRequired float64     `json:"childRunsPerDayRequired,omitempty"`
	ChildDemandUnitsPerDay  float64     `json:"childDemandUnitsPerDay,omitempty"`
}

// MakeOption es una estrategia concreta y completa para producir un ticker
// con una receta: métricas propias ("self") calculadas por el enumerador y
// métricas acumuladas del subárbol adjuntadas después por el rollup.
type MakeOption struct {
	Ticker   string `json:"ticker"`
	RecipeID string `json:"recipeId"`
	Building string `json:"building"`

	OutputAmount float64 `json:"outputAmount"` // unidades por run
	RunsPerDay   float64 `json:"runsPerDay"`   // capacidad a eficiencia 100%
	SellPrice    float64 `json:"sellPrice"`

	// Métricas propias, sin hijos.
	SelfAreaPerDay   float64 `json:"selfAreaPerDay"` // área edificio ÷ output por run
	SelfBuildCost    float64 `json:"buildCost"`
	SelfInputBuffer7 float64 `json:"inputBuffer7"` // 7 días de inputs por run
	InputCostPerRun  float64 `json:"inputCostPerRun"`
	CogmPerOutput    float64 `json:"cogmPerOutput"`
	BaseProfitPerDay float64 `json:"baseProfitPerDay"`
	ProfitPerDay     float64 `json:"profitPerDay"` // tras ajuste de overhead

	Scenario string          `json:"scenario"`
	Decision Decision        `json:"-"`
	Inputs   []MadeInputDetail `json:"madeInputDetails"`

	// Rollup es nil hasta que el scoring anota la opción.
	Rollup *RollupMetrics `json:"rollup,omitempty"`
}

// NominalDemand es la demanda a plena capacidad propia (unidades/día).
func (o *MakeOption) NominalDemand() float64 {
	return o.OutputAmount * o.RunsPerDay
}

// TotalProfitPA devuelve el ratio de ranking (profit por unidad de área
// acumulada). 0 si la opción aún no está anotada.
func (o *MakeOption) TotalProfitPA() float64 {
	if o.Rollup == nil {
		return 0
	}
	return o.Rollup.TotalProfitPA
}

// ChainNode es el árbol solo-MAKE del resolver, para visualización y
// diagnóstico. Un nodo es o bien una receta resuelta con hijos, o bien una
// hoja de error con su razón.
type ChainNode struct {
	Ticker       string  `json:"ticker"`
	RecipeID     string  `json:"recipeId,omitempty"`
	Building     string  `json:"building,omitempty"`
	AmountPerRun float64 `json:"amountPerRun,omitempty"` // lo que pide el padre por run

	IsError      bool   `json:"isError,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`

	Inputs []*ChainNode `json:"inputs,omitempty"`
}

// Report es el resultado completo de una evaluación: opciones rankeadas y
// anotadas, vista condensada y árbol de cadena. Se crea fresco en cada
// llamada; nada sobrevive entre evaluaciones.
type Report struct {
	ID          string        `json:"id"`
	Ticker      string        `json:"ticker"`
	GeneratedAt time.Time     `json:"generatedAt"`
	PriceField  PriceField    `json:"priceField"`
	Demand      float64       `json:"demand"` // unidades/día pedidas a la raíz
	Options     []*MakeOption `json:"options"`
	Condensed   []*MakeOption `json:"condensed"`
	Tree        *ChainNode    `json:"tree,omitempty"`
}

// Best devuelve la opción mejor rankeada, o nil si no hay escenarios.
func (r *Report) Best() *MakeOption {
	if len(r.Options) == 0 {
		return nil
	}
	return r.Options[0]
}
