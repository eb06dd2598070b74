package domain

import "strings"

// Decision es el registro recursivo de la decisión comprar/fabricar de un
// ticker. Tanto el string de escenario (display) como la clave de
// deduplicación se derivan de este valor, de forma determinista — nunca al
// revés, para evitar drift de formato.
type Decision struct {
	Ticker   string     `json:"ticker"`
	Buy      bool       `json:"buy"`
	RecipeID string     `json:"recipeId,omitempty"`
	Inputs   []Decision `json:"inputs,omitempty"`
}

// BuyDecision crea la hoja "comprar este ticker en mercado".
func BuyDecision(ticker string) Decision {
	return Decision{Ticker: ticker, Buy: true}
}

// MakeDecision crea el nodo "fabricar con esta receta", con una decisión
// por input en el orden de la receta.
func MakeDecision(ticker, recipeID string, inputs []Decision) Decision {
	return Decision{Ticker: ticker, RecipeID: recipeID, Inputs: inputs}
}

// Scenario devuelve la codificación completa del camino de decisiones.
// Formato: "buy:H2O" | "make:HCP_1[buy:H2O]". Determinista: los inputs
// siguen el orden de la receta.
func (d Decision) Scenario() string {
	if d.Buy {
		return "buy:" + d.Ticker
	}
	var sb strings.Builder
	sb.WriteString("make:")
	sb.WriteString(d.RecipeID)
	if len(d.Inputs) > 0 {
		sb.WriteByte('[')
		for i, in := range d.Inputs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(in.Scenario())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

// TopKey devuelve la firma del escenario de primer nivel: receta propia más
// buy/make por input directo, ignorando cómo se resolvió la recursión más
// profunda. Dos opciones con el mismo TopKey son "el mismo escenario" en la
// vista condensada.
func (d Decision) TopKey() string {
	if d.Buy {
		return "buy:" + d.Ticker
	}
	var sb strings.Builder
	sb.WriteString(d.RecipeID)
	sb.WriteByte('[')
	for i, in := range d.Inputs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(in.Ticker)
		if in.Buy {
			sb.WriteString("=buy")
		} else {
			sb.WriteString("=make")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
