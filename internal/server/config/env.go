package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from process environment variables.
// An optional .env file in the working directory is loaded first; variables
// already present in the environment win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddr = getEnv("ADDRESS", config.EndpointAddr)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("JWT_SECRET", config.SecretKey)
	config.TokenValidityDuration = getEnvAsDuration("TOKEN_TTL", config.TokenValidityDuration)
	config.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", config.CORSAllowedOrigins)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
