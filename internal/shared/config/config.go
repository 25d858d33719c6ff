package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	ObjectStoreType  string
	LocalStoreDir    string
	SpacesRegion     string
	SpacesEndpoint   string
	SpacesBucket     string
	SpacesKey        string
	SpacesSecret     string
	ExportURLTTLSecs int

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string

	TheirStackBaseURL string
	TheirStackAPIKey  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             normalizeEnv(getEnv("ENV", "dev")),

		ObjectStoreType:  normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		SpacesRegion:     getEnv("DO_SPACES_REGION", ""),
		SpacesEndpoint:   getEnv("DO_SPACES_ENDPOINT", ""),
		SpacesBucket:     getEnv("DO_SPACES_BUCKET", ""),
		SpacesKey:        getEnv("DO_SPACES_KEY", ""),
		SpacesSecret:     getEnv("DO_SPACES_SECRET", ""),
		ExportURLTTLSecs: getEnvInt("EXPORT_URL_TTL_SECONDS", 3600),

		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		TheirStackBaseURL: getEnv("THEIRSTACK_BASE_URL", "https://api.theirstack.com"),
		TheirStackAPIKey:  getEnv("THEIRSTACK_API_KEY", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3", "spaces":
		return "s3"
	default:
		return "local"
	}
}
