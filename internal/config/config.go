// Package config loads the environment-driven settings of the hireflow
// binaries.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/hireflow/pkg/logger"
)

var (
	ErrLoadDotenv    = errors.New("config: failed to load .env file")
	ErrParse         = errors.New("config: failed to parse environment")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Client configures an SDK consumer such as the dashboard example.
type Client struct {
	// PageURL is the address the frontend is served from. It drives backend
	// resolution when APIURL is empty.
	PageURL   string        `env:"HIREFLOW_PAGE_URL" envDefault:"http://localhost:3000"`
	APIURL    string        `env:"HIREFLOW_API_URL"`
	TunnelURL string        `env:"HIREFLOW_TUNNEL_URL"`
	StoreURL  string        `env:"HIREFLOW_STORE_URL" envDefault:"file://"`
	Language  string        `env:"HIREFLOW_LANG" envDefault:"fr"`
	Timeout   time.Duration `env:"HIREFLOW_HTTP_TIMEOUT" envDefault:"30s"`
	Log       logger.Config
}

// Edge configures the edge server.
type Edge struct {
	Addr            string        `env:"EDGE_ADDR" envDefault:":3000"`
	BackendURL      string        `env:"EDGE_BACKEND_URL" envDefault:"http://localhost:8000"`
	BackendHealth   string        `env:"EDGE_BACKEND_HEALTH_PATH" envDefault:"/health"`
	FrontendURL     string        `env:"EDGE_FRONTEND_URL"`
	StaticDir       string        `env:"EDGE_STATIC_DIR"`
	BaseDomain      string        `env:"EDGE_BASE_DOMAIN"`
	JWTSecret       string        `env:"EDGE_JWT_SECRET"`
	RedisURL        string        `env:"EDGE_REDIS_URL"`
	CORSOrigins     []string      `env:"EDGE_CORS_ORIGINS" envSeparator:","`
	RequestTimeout  time.Duration `env:"EDGE_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"EDGE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	Log             logger.Config
}

// Validate checks the upstream URLs.
func (c Edge) Validate() error {
	if err := absoluteURL("EDGE_BACKEND_URL", c.BackendURL); err != nil {
		return err
	}
	if c.FrontendURL != "" {
		if err := absoluteURL("EDGE_FRONTEND_URL", c.FrontendURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the optional API override.
func (c Client) Validate() error {
	if c.APIURL == "" {
		return nil
	}
	return absoluteURL("HIREFLOW_API_URL", c.APIURL)
}

type validator interface {
	Validate() error
}

// Load reads the given .env files (missing files are skipped), then parses
// the process environment into T.
func Load[T validator](files ...string) (T, error) {
	var zero T
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zero, errors.Join(ErrLoadDotenv, err)
		}
	}
	return parse[T](env.Options{})
}

// LoadFrom parses T from an explicit environment map.
func LoadFrom[T validator](environ map[string]string) (T, error) {
	return parse[T](env.Options{Environment: environ})
}

func parse[T validator](opts env.Options) (T, error) {
	cfg, err := env.ParseAsWithOptions[T](opts)
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return cfg, nil
}

func absoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, raw)
	}
	return nil
}
