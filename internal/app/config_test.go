package app

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.Provider != "openai" || cfg.Model != "gpt-4o-mini" {
		t.Errorf("provider defaults = %q/%q", cfg.Provider, cfg.Model)
	}
	if cfg.RedisAddr != "" || cfg.PGURL != "" || len(cfg.KafkaBrokers) != 0 {
		t.Error("optional backends should be disabled by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("GEN_PROVIDER", "gemini")
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092,")
	t.Setenv("PG_MAX_CONN", "25")

	cfg := LoadConfig()
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "b2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.PGMaxConn != 25 {
		t.Errorf("PGMaxConn = %d", cfg.PGMaxConn)
	}
}

func TestGetEnvIntBadValue(t *testing.T) {
	t.Setenv("PG_MAX_CONN", "banana")
	cfg := LoadConfig()
	if cfg.PGMaxConn != 10 {
		t.Errorf("PGMaxConn = %d, want fallback 10", cfg.PGMaxConn)
	}
}
