package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// insecureDevSecret is the fallback signing secret used when JWT_SECRET is
// unset. It must never reach production; Load refuses to start there.
const insecureDevSecret = "dev-secret-change-in-production"

type Config struct {
	Port           string
	Env            string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string

	// InsecureJWTSecret is set when the development fallback secret is in
	// use, so the hazard can be logged at startup instead of hidden.
	InsecureJWTSecret bool
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getEnv("MONGODB_DB", "eventhub"),
		JWTSecret:      getEnv("JWT_SECRET", insecureDevSecret),
		JWTExpiry:      getDuration("JWT_EXPIRY", 24*time.Hour),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	cfg.InsecureJWTSecret = cfg.JWTSecret == insecureDevSecret
	if cfg.Env == "production" && cfg.InsecureJWTSecret {
		log.Fatal().Msg("JWT_SECRET must be set in production environment")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
