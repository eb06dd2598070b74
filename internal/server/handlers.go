package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/chain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// handleOptions evalúa un ticker y devuelve el report completo.
//
//	GET /api/options?ticker=C&price=ask&demand=100&limit=10
//	    &forceMake=HCP&forceBuy=H2O&forceRecipe=C_1&excludeRecipe=C_2
//	    &bestRecipe=HCP=HCP_1
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.planner.Evaluate(r.Context(), req)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// handleChain devuelve solo el árbol solo-MAKE de diagnóstico.
func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.planner.Evaluate(r.Context(), req)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report.Tree)
}

// handlePrices devuelve el precio conocido de un ticker.
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(r.PathValue("ticker"))
	if ticker == "" {
		s.writeError(w, http.StatusBadRequest, "missing ticker")
		return
	}

	prices, err := s.prices.FetchPrices(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	price, ok := prices[ticker]
	if !ok {
		s.writeError(w, http.StatusNotFound, "no price data for "+ticker)
		return
	}
	s.writeJSON(w, http.StatusOK, price)
}

// parseRequest convierte la query string en un chain.Request. Los params
// de override son listas separadas por comas; ausente ⇒ conjunto vacío.
func parseRequest(r *http.Request) (chain.Request, error) {
	q := r.URL.Query()

	ticker := strings.ToUpper(strings.TrimSpace(q.Get("ticker")))
	if ticker == "" {
		return chain.Request{}, errMissingTicker
	}

	field, err := domain.ParsePriceField(q.Get("price"))
	if err != nil {
		return chain.Request{}, err
	}

	var demand float64
	if v := q.Get("demand"); v != "" {
		demand, err = strconv.ParseFloat(v, 64)
		if err != nil || demand < 0 {
			return chain.Request{}, errBadDemand
		}
	}

	var limit int
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return chain.Request{}, errBadLimit
		}
	}

	return chain.Request{
		Ticker:     ticker,
		Demand:     demand,
		PriceField: field,
		TopN:       limit,
		Overrides: domain.ParseOverrides(
			q.Get("forceMake"),
			q.Get("forceBuy"),
			q.Get("forceRecipe"),
			q.Get("excludeRecipe"),
			q.Get("bestRecipe"),
		),
	}, nil
}

// Errores de validación de parámetros.
var (
	errMissingTicker = paramError("missing required param: ticker")
	errBadDemand     = paramError("demand must be a non-negative number")
	errBadLimit      = paramError("limit must be a non-negative integer")
)

type paramError string

func (e paramError) Error() string { return string(e) }
