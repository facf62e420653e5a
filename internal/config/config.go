package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigFile = "config.yaml"

type Config struct {
	HTTP      HTTP      `yaml:"http"`
	Search    Search    `yaml:"search"`
	RateLimit RateLimit `yaml:"rate_limit"`
	History   History   `yaml:"history"`
	Airports  Airports  `yaml:"airports"`
}

type HTTP struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

type Search struct {
	APIURL     string        `yaml:"api_url" env:"SEARCH_API_URL" env-default:"https://serpapi.com"`
	APIKey     string        `yaml:"api_key" env:"SEARCH_API_KEY"`
	Currency   string        `yaml:"currency" env:"SEARCH_CURRENCY" env-default:"USD"`
	Locale     string        `yaml:"locale" env:"SEARCH_LOCALE" env-default:"en"`
	Timeout    time.Duration `yaml:"timeout" env:"SEARCH_TIMEOUT" env-default:"10s"`
	MaxRetries int           `yaml:"max_retries" env:"SEARCH_MAX_RETRIES" env-default:"2"`
}

type RateLimit struct {
	RequestsPerSecond float64    `yaml:"requests_per_second" env:"SEARCH_RATE_LIMIT_RPS" env-default:"5"`
	BurstSize         int        `yaml:"burst_size" env:"SEARCH_RATE_LIMIT_BURST" env-default:"10"`
	Flights           EngineRate `yaml:"flights" env-prefix:"SEARCH_FLIGHTS_"`
	Hotels            EngineRate `yaml:"hotels" env-prefix:"SEARCH_HOTELS_"`
}

// EngineRate overrides the shared limit for one search engine. Zero values
// keep the shared limit.
type EngineRate struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	BurstSize         int     `yaml:"burst_size" env:"RATE_LIMIT_BURST"`
}

type History struct {
	Enabled       bool          `yaml:"enabled" env:"HISTORY_ENABLED" env-default:"false"`
	RedisHost     string        `yaml:"redis_host" env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string        `yaml:"redis_port" env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	TTL           time.Duration `yaml:"ttl" env:"HISTORY_TTL" env-default:"168h"`
	MaxEntries    int           `yaml:"max_entries" env:"HISTORY_MAX_ENTRIES" env-default:"100"`
}

// Airports adds place names to the built-in airport table, for example
// AIRPORT_PLACES="Porto:OPO,Faro:FAO".
type Airports struct {
	Places map[string]string `yaml:"places" env:"AIRPORT_PLACES"`
}

// Load reads the YAML file named by CONFIG_FILE (config.yaml by default) when
// it exists. Environment variables override the file.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	return load(path)
}

func load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Search.APIKey == "":
		return errors.New("config error: SEARCH_API_KEY is required")
	case c.Search.Timeout <= 0:
		return errors.New("config error: SEARCH_TIMEOUT must be positive")
	case c.Search.MaxRetries < 0:
		return errors.New("config error: SEARCH_MAX_RETRIES must not be negative")
	case c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.BurstSize <= 0:
		return errors.New("config error: rate limit must be positive")
	case c.RateLimit.Flights.RequestsPerSecond < 0 || c.RateLimit.Flights.BurstSize < 0,
		c.RateLimit.Hotels.RequestsPerSecond < 0 || c.RateLimit.Hotels.BurstSize < 0:
		return errors.New("config error: engine rate limits must not be negative")
	}
	for name, code := range c.Airports.Places {
		if len(code) != 3 {
			return fmt.Errorf("config error: airport code %q for %q must have 3 letters", code, name)
		}
	}
	return nil
}
