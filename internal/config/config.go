package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey   string
	OpenAIAPIKey   string
	GoogleAPIKey   string
	SearchEngineID string
	JWTSecret      string
	DatabaseURL    string
	HTTPPort       string
	UploadDir      string
	LogLevel       string
}

// Load reads the .env file if present, then the environment. Secrets have no
// defaults: a missing one fails startup with every absent key named.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional; environment variables win

	cfg := &Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		SearchEngineID: os.Getenv("SEARCH_ENGINE_ID"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		DatabaseURL:    getEnv("DATABASE_URL", "aura.db"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}

	var missing []string
	for _, required := range []struct {
		key   string
		value string
	}{
		{"GEMINI_API_KEY", cfg.GeminiAPIKey},
		{"OPENAI_API_KEY", cfg.OpenAIAPIKey},
		{"GOOGLE_API_KEY", cfg.GoogleAPIKey},
		{"SEARCH_ENGINE_ID", cfg.SearchEngineID},
		{"JWT_SECRET", cfg.JWTSecret},
	} {
		if required.value == "" {
			missing = append(missing, required.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
