package blob

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// Formatos CSV (con cabecera, separador coma):
//
//	recipes.csv:   recipe_id,ticker,building,output_amount,runs_per_day,inputs
//	               inputs = "H2O:2|FE:1" (pares ticker:cantidad separados por |)
//	buildings.csv: ticker,name,area,build_cost
//	prices.csv:    ticker,bid,ask,pp7,pp30 (campos vacíos = sin dato)
//	trades.csv:    ticker,price,volume,traded_at (RFC 3339)

// parseRecipesCSV convierte recipes.csv en recetas del dominio, en el
// orden del archivo (ese orden define la receta por defecto).
func parseRecipesCSV(r io.Reader) ([]domain.Recipe, error) {
	rows, err := readAll(r, 6)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for i, row := range rows {
		output, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: output_amount: %w", i+2, err)
		}
		runs, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: runs_per_day: %w", i+2, err)
		}
		inputs, err := parseInputList(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: inputs: %w", i+2, err)
		}

		recipes = append(recipes, domain.Recipe{
			ID:           row[0],
			Ticker:       row[1],
			Building:     row[2],
			OutputAmount: output,
			RunsPerDay:   runs,
			Inputs:       inputs,
		})
	}
	return recipes, nil
}

// parseInputList parsea "H2O:2|FE:1". Vacío = receta sin inputs (extracción).
func parseInputList(s string) ([]domain.RecipeInput, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "|")
	inputs := make([]domain.RecipeInput, 0, len(parts))
	for _, p := range parts {
		ticker, amountStr, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("malformed input %q", p)
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", p, err)
		}
		inputs = append(inputs, domain.RecipeInput{Ticker: strings.TrimSpace(ticker), Amount: amount})
	}
	return inputs, nil
}

// parseBuildingsCSV convierte buildings.csv.
func parseBuildingsCSV(r io.Reader) ([]domain.Building, error) {
	rows, err := readAll(r, 4)
	if err != nil {
		return nil, err
	}

	buildings := make([]domain.Building, 0, len(rows))
	for i, row := range rows {
		area, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: area: %w", i+2, err)
		}
		cost, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: build_cost: %w", i+2, err)
		}
		buildings = append(buildings, domain.Building{
			Ticker:    row[0],
			Name:      row[1],
			Area:      area,
			BuildCost: cost,
		})
	}
	return buildings, nil
}

// parsePricesCSV convierte prices.csv. Campos vacíos quedan en nil.
func parsePricesCSV(r io.Reader) (domain.PriceCatalog, error) {
	rows, err := readAll(r, 5)
	if err != nil {
		return nil, err
	}

	out := make(domain.PriceCatalog, len(rows))
	for i, row := range rows {
		p := domain.Price{}
		for j, dst := range []**float64{&p.Bid, &p.Ask, &p.PP7, &p.PP30} {
			field := strings.TrimSpace(row[j+1])
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: column %d: %w", i+2, j+2, err)
			}
			*dst = domain.Float(v)
		}
		out[row[0]] = p
	}
	return out, nil
}

// parseTradesCSV convierte trades.csv.
func parseTradesCSV(r io.Reader) ([]domain.Trade, error) {
	rows, err := readAll(r, 4)
	if err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(rows))
	for i, row := range rows {
		price, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", i+2, err)
		}
		volume, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: volume: %w", i+2, err)
		}
		tradedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("row %d: traded_at: %w", i+2, err)
		}
		trades = append(trades, domain.Trade{
			Ticker:   row[0],
			Price:    price,
			Volume:   volume,
			TradedAt: tradedAt.UTC(),
		})
	}
	return trades, nil
}

// readAll lee el CSV completo validando el número de columnas y saltando
// la cabecera.
func readAll(r io.Reader, fields int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil // primera fila = cabecera
}
