package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config dorry-server (HTTP API) configuration. Values are loaded from
// environment variables with sane local-dev defaults; an optional YAML
// file (CONFIG_FILE) is overlaid on top for the provider blocks.
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	DBEnabled bool           `yaml:"db_enabled"`
	Database  DatabaseConfig `yaml:"database"`
	Redis     struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Weather WeatherConfig `yaml:"weather"`
	TTS     TTSConfig     `yaml:"tts"`

	// Pricing overrides the built-in material price table. Keys are
	// material names (e.g. "red_brick"); missing keys keep defaults.
	Pricing map[string]MaterialPrice `yaml:"pricing"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MaxIdle  int    `yaml:"max_idle"`
}

// DSN returns the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// WeatherConfig configures the environmental data provider chain.
type WeatherConfig struct {
	WeatherAPIBaseURL  string `yaml:"weatherapi_base_url"`
	WeatherAPIKey      string `yaml:"weatherapi_key"`
	OpenWeatherBaseURL string `yaml:"openweather_base_url"`
	OpenWeatherAPIKey  string `yaml:"openweather_key"`
	CacheTTLSeconds    int    `yaml:"cache_ttl_seconds"`
}

// TTSConfig configures speech synthesis. TTS is considered unavailable
// when either field is empty.
type TTSConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

// MaterialPrice is one entry of the material price table.
type MaterialPrice struct {
	PricePerUnit float64 `yaml:"price_per_unit"`
	Unit         string  `yaml:"unit"`
}

// Load builds the configuration from the environment, then overlays the
// YAML file named by CONFIG_FILE when present.
func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev: when the DB is unavailable the
	// server falls back to in-memory repositories.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "dorry")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Weather.WeatherAPIBaseURL = getEnv("WEATHERAPI_BASE_URL", "https://api.weatherapi.com")
	cfg.Weather.WeatherAPIKey = getEnv("WEATHERAPI_KEY", "")
	cfg.Weather.OpenWeatherBaseURL = getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	cfg.Weather.OpenWeatherAPIKey = getEnv("OPENWEATHER_KEY", "")
	cfg.Weather.CacheTTLSeconds = parseInt(getEnv("WEATHER_CACHE_TTL", "600"), 600)

	cfg.TTS.Endpoint = getEnv("TTS_ENDPOINT", "")
	cfg.TTS.APIKey = getEnv("TTS_API_KEY", "")
	cfg.TTS.Language = getEnv("TTS_LANGUAGE", "ar-EG")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		_ = overlayFile(cfg, path)
	}

	return cfg
}

// overlayFile unmarshals a YAML file on top of the current config.
// Fields absent from the file keep their env/default values.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
