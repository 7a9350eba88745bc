// Package config loads process configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config carries every runtime setting the service reads. The Mongo client
// is the single shared store resource; its settings live here and the handle
// itself is constructed once and passed down through fx, never reached
// through package globals.
type Config struct {
	Environment     string
	HTTPAddr        string
	MongoURI        string
	MongoDatabase   string
	MongoTimeout    time.Duration
	SeedDir         string
	ProductCacheTTL time.Duration
	LogLevel        string
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "sales-analytics")
	v.SetDefault("MONGO_TIMEOUT", "10s")
	v.SetDefault("SEED_DIR", "")
	v.SetDefault("PRODUCT_CACHE_TTL", "5m")
	v.SetDefault("LOG_LEVEL", "info")

	return Config{
		Environment:     v.GetString("ENVIRONMENT"),
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		MongoTimeout:    v.GetDuration("MONGO_TIMEOUT"),
		SeedDir:         v.GetString("SEED_DIR"),
		ProductCacheTTL: v.GetDuration("PRODUCT_CACHE_TTL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
	}, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool { return c.Environment == "production" }

var Module = fx.Module("config",
	fx.Provide(Load),
)
