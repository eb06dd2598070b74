package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/chain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

type stubRecipes struct{ catalog *domain.RecipeCatalog }

func (s stubRecipes) FetchCatalog(context.Context) (*domain.RecipeCatalog, error) {
	return s.catalog, nil
}

type stubPrices struct{ prices domain.PriceCatalog }

func (s stubPrices) FetchPrices(context.Context) (domain.PriceCatalog, error) {
	return s.prices, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	catalog, err := domain.NewRecipeCatalog(
		[]domain.Recipe{
			{ID: "C_1", Ticker: "C", Building: "INC", OutputAmount: 1, RunsPerDay: 2,
				Inputs: []domain.RecipeInput{{Ticker: "HCP", Amount: 1}}},
			{ID: "HCP_1", Ticker: "HCP", Building: "FRM", OutputAmount: 2, RunsPerDay: 4,
				Inputs: []domain.RecipeInput{{Ticker: "H2O", Amount: 2}}},
		},
		[]domain.Building{
			{Ticker: "INC", Area: 30, BuildCost: 300},
			{Ticker: "FRM", Area: 20, BuildCost: 100},
		},
	)
	require.NoError(t, err)

	prices := stubPrices{prices: domain.PriceCatalog{
		"C":   {PP7: domain.Float(20)},
		"HCP": {PP7: domain.Float(5)},
		"H2O": {PP7: domain.Float(1)},
	}}

	planner := chain.NewPlanner(stubRecipes{catalog: catalog}, prices, nil, nil,
		chain.Config{PriceField: domain.PricePP7})

	return New(":0", planner, prices, 300*time.Second)
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Options(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/options?ticker=c")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "C", report.Ticker)
	require.Len(t, report.Options, 2)
	assert.Equal(t, "make:C_1[buy:HCP]", report.Options[0].Scenario)
	assert.NotNil(t, report.Options[0].Rollup)
}

func TestServer_Options_QueryParams(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/options?ticker=C&forceBuy=HCP&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Options, 1)
	assert.Equal(t, "make:C_1[buy:HCP]", report.Options[0].Scenario)
}

func TestServer_Options_BadParams(t *testing.T) {
	s := newTestServer(t)

	cases := []string{
		"/api/options",                      // sin ticker
		"/api/options?ticker=C&price=median", // campo de precio desconocido
		"/api/options?ticker=C&demand=-1",
		"/api/options?ticker=C&limit=x",
	}
	for _, path := range cases {
		rec := doRequest(t, s, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "error", path)
		// los errores no llevan headers de cacheo
		assert.Empty(t, rec.Header().Get("Cache-Control"), path)
	}
}

func TestServer_Chain(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/chain?ticker=C")
	require.Equal(t, http.StatusOK, rec.Code)

	var tree domain.ChainNode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	assert.Equal(t, "C_1", tree.RecipeID)
	require.Len(t, tree.Inputs, 1)
	assert.Equal(t, "HCP", tree.Inputs[0].Ticker)
}

func TestServer_Prices(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/prices/hcp")
	require.Equal(t, http.StatusOK, rec.Code)

	var price domain.Price
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &price))
	require.NotNil(t, price.PP7)
	assert.Equal(t, 5.0, *price.PP7)
	assert.Nil(t, price.Bid)

	rec = doRequest(t, s, "/api/prices/XYZ")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
