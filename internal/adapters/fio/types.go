package fio

// DTOs crudos de la API FIO. Solo los campos que usamos.

// fioRecipe es una entrada de /recipes/allrecipes.
type fioRecipe struct {
	BuildingTicker string         `json:"BuildingTicker"`
	RecipeName     string         `json:"RecipeName"`
	TimeMs         float64        `json:"TimeMs"` // duración de un run
	Inputs         []fioMaterial  `json:"Inputs"`
	Outputs        []fioMaterial  `json:"Outputs"`
}

// fioMaterial es un par material/cantidad dentro de una receta.
type fioMaterial struct {
	Ticker string  `json:"Ticker"`
	Amount float64 `json:"Amount"`
}

// fioBuilding es una entrada de /building/allbuildings.
type fioBuilding struct {
	Ticker        string            `json:"Ticker"`
	Name          string            `json:"Name"`
	AreaCost      float64           `json:"AreaCost"`
	BuildingCosts []fioBuildingCost `json:"BuildingCosts"`
}

// fioBuildingCost es un material de construcción del edificio.
type fioBuildingCost struct {
	CommodityTicker string  `json:"CommodityTicker"`
	Amount          float64 `json:"Amount"`
}

// fioExchangeEntry es una entrada de /exchange/full.
type fioExchangeEntry struct {
	MaterialTicker string   `json:"MaterialTicker"`
	ExchangeCode   string   `json:"ExchangeCode"`
	Bid            *float64 `json:"Bid"`
	Ask            *float64 `json:"Ask"`
	PriceAverage   *float64 `json:"PriceAverage"`
}
