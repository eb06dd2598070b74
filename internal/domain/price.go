package domain

import (
	"fmt"
	"strings"
	"time"
)

// PriceField selecciona qué precio del catálogo se usa para comprar y vender.
type PriceField string

const (
	PriceBid  PriceField = "bid"
	PriceAsk  PriceField = "ask"
	PricePP7  PriceField = "pp7"  // media ponderada por volumen a 7 días
	PricePP30 PriceField = "pp30" // media ponderada por volumen a 30 días
)

// ParsePriceField convierte el parámetro de request en un PriceField.
// Vacío significa el default (pp7, el precio suavizado).
func ParsePriceField(s string) (PriceField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PricePP7, nil
	case "bid":
		return PriceBid, nil
	case "ask":
		return PriceAsk, nil
	case "pp7", "avg7", "7d":
		return PricePP7, nil
	case "pp30", "avg30", "30d":
		return PricePP30, nil
	}
	return "", fmt.Errorf("domain.ParsePriceField: unknown price field %q", s)
}

// Price agrupa los precios conocidos de un ticker. Todos los campos son
// anulables: un nil significa "sin dato", nunca cero.
type Price struct {
	Bid  *float64 `json:"bid"`
	Ask  *float64 `json:"ask"`
	PP7  *float64 `json:"pp7"`
	PP30 *float64 `json:"pp30"`
}

// At devuelve el precio en el campo pedido. ok=false si no hay dato.
func (p Price) At(field PriceField) (float64, bool) {
	var v *float64
	switch field {
	case PriceBid:
		v = p.Bid
	case PriceAsk:
		v = p.Ask
	case PricePP7:
		v = p.PP7
	case PricePP30:
		v = p.PP30
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// PriceCatalog es el catálogo inmutable ticker → precios.
type PriceCatalog map[string]Price

// UnitPrice devuelve el precio unitario de un ticker en el campo dado.
// ok=false si el ticker no está o el campo no tiene dato.
func (pc PriceCatalog) UnitPrice(ticker string, field PriceField) (float64, bool) {
	p, ok := pc[ticker]
	if !ok {
		return 0, false
	}
	return p.At(field)
}

// Trade es una operación cruda de mercado, input del pipeline de suavizado.
type Trade struct {
	Ticker   string    `json:"ticker"`
	Price    float64   `json:"price"`
	Volume   float64   `json:"volume"`
	TradedAt time.Time `json:"tradedAt"`
}

// Float es el helper para construir campos de precio anulables.
func Float(v float64) *float64 { return &v }
