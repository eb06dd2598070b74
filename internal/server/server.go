// Package server expone el engine por HTTP. Solo plumbing: routing,
// parseo de parámetros, headers de cacheo y serialización JSON — toda la
// lógica vive en internal/chain.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/chain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/ports"
)

// Server sirve la API del sitio.
type Server struct {
	planner     *chain.Planner
	prices      ports.PriceSource
	httpServer  *http.Server
	cacheMaxAge time.Duration
}

// New crea el Server con sus rutas registradas.
func New(addr string, planner *chain.Planner, prices ports.PriceSource, cacheMaxAge time.Duration) *Server {
	s := &Server{
		planner:     planner,
		prices:      prices,
		cacheMaxAge: cacheMaxAge,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/options", s.withRequestLog(s.handleOptions))
	mux.HandleFunc("GET /api/chain", s.withRequestLog(s.handleChain))
	mux.HandleFunc("GET /api/prices/{ticker}", s.withRequestLog(s.handlePrices))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run sirve hasta que el contexto se cancele; entonces apaga con gracia.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server.Run: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// withRequestLog asigna un request ID y registra cada petición.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		start := time.Now()
		next(w, r)
		slog.Debug("request served",
			"id", reqID,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	}
}

// writeJSON serializa la respuesta con los headers de cacheo del sitio.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if s.cacheMaxAge > 0 && status == http.StatusOK {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.cacheMaxAge.Seconds())))
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

// writeError responde un error JSON uniforme.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
