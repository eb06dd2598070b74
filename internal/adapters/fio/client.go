// Package fio es el adapter de ingestión contra la API REST comunitaria
// FIO. Convierte sus DTOs en los catálogos en memoria que consume el
// engine; implementa ports.RecipeSource y ports.PriceSource.
package fio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBase = "https://rest.fnar.net"

	// Límites conservadores: FIO no publica cuotas, así que nos quedamos
	// muy por debajo de lo que tolera.
	dataRatePerSec     = 5  // catálogos: /recipes, /building
	exchangeRatePerSec = 10 // /exchange

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client es el HTTP client de FIO con rate limiting y retries.
type Client struct {
	http            *http.Client
	base            string
	dataLimiter     *rate.Limiter
	exchangeLimiter *rate.Limiter
}

// NewClient crea un Client. base vacío usa la API de producción.
func NewClient(base string) *Client {
	if base == "" {
		base = defaultBase
	}
	return &Client{
		http:            &http.Client{Timeout: 30 * time.Second},
		base:            base,
		dataLimiter:     rate.NewLimiter(dataRatePerSec, 2),
		exchangeLimiter: rate.NewLimiter(exchangeRatePerSec, 5),
	}
}

// get hace un GET JSON con rate limiting y retries.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, path string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("status %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("fio retry", "path", path, "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial y jitter, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	wait += time.Duration(rand.Int63n(int64(baseRetryWait)))
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}
