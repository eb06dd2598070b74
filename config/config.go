package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del sitio.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Source  SourceConfig  `yaml:"source"`
	Blob    BlobConfig    `yaml:"blob"`
	Pricing PricingConfig `yaml:"pricing"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig controla la resolución de cadenas.
type EngineConfig struct {
	PriceField   string  `yaml:"price_field"`   // bid | ask | pp7 | pp30
	OverheadRate float64 `yaml:"overhead_rate"` // fracción de overhead sobre el profit base
	MaxDepth     int     `yaml:"max_depth"`
	TopN         int     `yaml:"top_n"` // límite por defecto del ranking
}

// SourceConfig elige de dónde salen catálogos y precios.
type SourceConfig struct {
	Kind    string `yaml:"kind"` // fio | s3 | sqlite
	FIOBase string `yaml:"fio_base"`
}

// BlobConfig configura la ingestión desde S3/MinIO.
type BlobConfig struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// PricingConfig controla el suavizado de precios.
type PricingConfig struct {
	WindowDays     int     `yaml:"window_days"`
	LongWindowDays int     `yaml:"long_window_days"`
	ClipFactor     float64 `yaml:"clip_factor"`
}

// StorageConfig controla dónde se persiste el histórico.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ServerConfig controla la API HTTP.
type ServerConfig struct {
	Addr               string `yaml:"addr"`
	CacheMaxAgeSeconds int    `yaml:"cache_max_age_seconds"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Las variables de entorno sobreescriben el YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// CacheMaxAge devuelve el max-age del server como time.Duration.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Server.CacheMaxAgeSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FIO_BASE"); v != "" {
		cfg.Source.FIOBase = v
	}
	if v := os.Getenv("BLOB_BUCKET"); v != "" {
		cfg.Blob.Bucket = v
	}
	if v := os.Getenv("BLOB_ENDPOINT"); v != "" {
		cfg.Blob.Endpoint = v
	}
}

// setDefaults asegura valores sensatos para lo no configurado.
func setDefaults(cfg *Config) {
	if cfg.Engine.PriceField == "" {
		cfg.Engine.PriceField = "pp7"
	}
	if cfg.Engine.MaxDepth <= 0 {
		cfg.Engine.MaxDepth = 20
	}
	if cfg.Engine.TopN <= 0 {
		cfg.Engine.TopN = 20
	}
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "fio"
	}
	if cfg.Pricing.WindowDays <= 0 {
		cfg.Pricing.WindowDays = 7
	}
	if cfg.Pricing.LongWindowDays <= 0 {
		cfg.Pricing.LongWindowDays = 30
	}
	if cfg.Pricing.ClipFactor <= 1 {
		cfg.Pricing.ClipFactor = 3.0
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "prun.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.CacheMaxAgeSeconds <= 0 {
		cfg.Server.CacheMaxAgeSeconds = 300
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
