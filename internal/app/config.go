package app

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Env       string
	HTTPAddr  string
	CORSAllow []string

	StaticDir  string // directory served at /
	PromptPath string // prompt template for the generation proxy

	// Generation proxy
	Provider       string // "openai" or "gemini"
	Model          string
	OpenAIKey      string
	OpenAIEndpoint string
	GeminiKey      string
	GeminiBaseURL  string

	// Optional backends; an empty address/URL disables the feature
	RedisAddr    string // cross-instance relay bus
	RedisDB      int
	PGURL        string // generation history store
	PGMaxConn    int
	KafkaBrokers []string // relay audit trail
	KafkaTopic   string
}

func LoadConfig() Config {
	cfg := Config{
		Env:        getEnv("APP_ENV", "dev"),
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		StaticDir:  getEnv("STATIC_DIR", "public"),
		PromptPath: getEnv("PROMPT_PATH", "prompt.md"),

		Provider:       getEnv("GEN_PROVIDER", "openai"),
		Model:          getEnv("GEN_MODEL", "gpt-4o-mini"),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIEndpoint: getEnv("OPENAI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		GeminiKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models/"),

		RedisAddr:  getEnv("REDIS_ADDR", ""),
		PGURL:      getEnv("PG_URL", ""),
		KafkaTopic: getEnv("KAFKA_TOPIC", "relay-events"),
	}
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.PGMaxConn = getEnvInt("PG_MAX_CONN", 10)
	cfg.KafkaBrokers = splitCSV(getEnv("KAFKA_BROKERS", ""))
	// CORS allowlist
	cfg.CORSAllow = splitCSV(getEnv("CORS_ALLOW", "http://localhost:8080"))
	return cfg
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses an int env var with a fallback
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		var i int
		_, _ = fmt.Sscanf(v, "%d", &i)
		if i > 0 {
			return i
		}
	}
	return def
}

// splitCSV trims and filters a comma-separated list
func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
