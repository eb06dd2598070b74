// Package blob es el adapter de ingestión desde object storage: catálogos
// y trades exportados como CSV a un bucket S3 (AWS o MinIO). Implementa
// ports.RecipeSource, ports.PriceSource y ports.TradeSource.
package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// Keys de los objetos dentro del bucket.
const (
	recipesKey   = "recipes.csv"
	buildingsKey = "buildings.csv"
	pricesKey    = "prices.csv"
	tradesKey    = "trades.csv"
)

// Config son los parámetros de conexión al bucket.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // opcional: endpoint custom (MinIO)
	PathStyle bool
}

// Store lee los CSVs del bucket y los convierte a catálogos del dominio.
type Store struct {
	client *s3.Client
	bucket string
}

// New crea un Store contra el bucket configurado. Las credenciales salen
// de la cadena de proveedores por defecto del SDK (env, perfil, rol).
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob.New: bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("blob.New: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// FetchCatalog lee recipes.csv y buildings.csv y devuelve el catálogo
// validado.
func (s *Store) FetchCatalog(ctx context.Context) (*domain.RecipeCatalog, error) {
	body, err := s.getObject(ctx, recipesKey)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchCatalog: %w", err)
	}
	recipes, err := parseRecipesCSV(body)
	body.Close()
	if err != nil {
		return nil, fmt.Errorf("blob.FetchCatalog: %s: %w", recipesKey, err)
	}

	body, err = s.getObject(ctx, buildingsKey)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchCatalog: %w", err)
	}
	buildings, err := parseBuildingsCSV(body)
	body.Close()
	if err != nil {
		return nil, fmt.Errorf("blob.FetchCatalog: %s: %w", buildingsKey, err)
	}

	catalog, err := domain.NewRecipeCatalog(recipes, buildings)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchCatalog: %w", err)
	}
	return catalog, nil
}

// FetchPrices lee prices.csv y devuelve el catálogo de precios.
func (s *Store) FetchPrices(ctx context.Context) (domain.PriceCatalog, error) {
	body, err := s.getObject(ctx, pricesKey)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchPrices: %w", err)
	}
	defer body.Close()

	prices, err := parsePricesCSV(body)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchPrices: %s: %w", pricesKey, err)
	}
	return prices, nil
}

// FetchTrades lee trades.csv filtrando por fecha para el suavizado.
func (s *Store) FetchTrades(ctx context.Context, since time.Time) ([]domain.Trade, error) {
	body, err := s.getObject(ctx, tradesKey)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchTrades: %w", err)
	}
	defer body.Close()

	trades, err := parseTradesCSV(body)
	if err != nil {
		return nil, fmt.Errorf("blob.FetchTrades: %s: %w", tradesKey, err)
	}

	out := trades[:0]
	for _, t := range trades {
		if !t.TradedAt.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

// getObject descarga un objeto del bucket.
func (s *Store) getObject(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	return resp.Body, nil
}
