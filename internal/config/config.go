package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"smarttravel/pkg/utils"
)

const (
	APITitle   = "Smart Travel Recommendation API"
	APIVersion = "1.0.0"
)

type AppConfig struct {
	Host     string
	Port     string
	Debug    bool
	LogLevel string

	GenerationProvider string
	GeminiAPIKey       string
	GeminiModel        string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	GenerationTimeout  time.Duration

	APIKey         string
	APIKeyHash     string
	JWTSecret      string
	AllowedOrigins []string

	RateLimitPerSecond float64
	RateLimitBurst     int

	// PostgresURL is optional; the database is only probed by /health.
	PostgresURL string

	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string
	FlightTimezone      string
	AirlineCacheTTL     time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() AppConfig {
	_ = godotenv.Load()

	return AppConfig{
		Host:     getEnvWithDefault("API_HOST", "0.0.0.0"),
		Port:     getEnvWithDefault("PORT", getEnvWithDefault("API_PORT", "8000")),
		Debug:    getBoolEnv("DEBUG", false),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		GenerationProvider: strings.ToLower(getEnvWithDefault("GENERATION_PROVIDER", "gemini")),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		GenerationTimeout:  getDurationEnv("GENERATION_TIMEOUT", 60*time.Second),

		APIKey:         os.Getenv("API_KEY"),
		APIKeyHash:     os.Getenv("API_KEY_HASH"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(getEnvWithDefault("ALLOWED_ORIGINS", "*")),

		RateLimitPerSecond: getFloatEnv("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),

		PostgresURL: os.Getenv("POSTGRES_URL"),

		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusBaseURL:      getEnvWithDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		FlightTimezone:      getEnvWithDefault("FLIGHT_TIMEZONE", "Asia/Bangkok"),
		AirlineCacheTTL:     getDurationEnv("AIRLINE_CACHE_TTL", 24*time.Hour),
	}
}

// Addr is the listen address for the HTTP server.
func (c AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c AppConfig) Amadeus() utils.AmadeusConfig {
	return utils.AmadeusConfig{
		ClientID:     c.AmadeusClientID,
		ClientSecret: c.AmadeusClientSecret,
		BaseURL:      c.AmadeusBaseURL,
		Timeout:      c.GenerationTimeout,
	}
}

// Generation returns the settings of the selected provider.
func (c AppConfig) Generation() utils.GenerationConfig {
	if c.GenerationProvider == "openai" {
		return utils.GenerationConfig{
			Provider: "openai",
			APIKey:   c.OpenAIAPIKey,
			Model:    c.OpenAIModel,
			BaseURL:  c.OpenAIBaseURL,
			Timeout:  c.GenerationTimeout,
		}
	}
	return utils.GenerationConfig{
		Provider: c.GenerationProvider,
		APIKey:   c.GeminiAPIKey,
		Model:    c.GeminiModel,
		Timeout:  c.GenerationTimeout,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getIntEnv(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloatEnv(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

// getDurationEnv accepts Go durations ("45s") or a bare number of seconds.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
