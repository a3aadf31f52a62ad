package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName              string
	AppEnv               string
	AppPort              string
	DatabaseURL          string
	RedisURL             string
	JWTSecret            string
	ScoreCacheTTL        time.Duration
	AIProvider           string
	OpenAIAPIKey         string
	OpenAIModel          string
	AnthropicAPIKey      string
	CreditsPerEvaluation int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BANDSCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "BandScore API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("scores.cache_ttl", "5m")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai_model", "gpt-4")
	v.SetDefault("credits.per_evaluation", 1)

	ttlString := v.GetString("scores.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid scores cache ttl: %w", err)
	}

	cfg := Config{
		AppName:              v.GetString("app.name"),
		AppEnv:               v.GetString("app.env"),
		AppPort:              v.GetString("app.port"),
		DatabaseURL:          v.GetString("database.url"),
		RedisURL:             v.GetString("redis.url"),
		JWTSecret:            v.GetString("jwt.secret"),
		ScoreCacheTTL:        ttl,
		AIProvider:           strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:         v.GetString("openai_api_key"),
		OpenAIModel:          v.GetString("openai_model"),
		AnthropicAPIKey:      v.GetString("anthropic_api_key"),
		CreditsPerEvaluation: v.GetInt("credits.per_evaluation"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.CreditsPerEvaluation <= 0 {
		cfg.CreditsPerEvaluation = 1
	}

	return cfg, nil
}
