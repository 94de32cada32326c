package utils

import (
	"testing"
	"time"
)

func TestLoadServerConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("RECIPEHUB_HTTP_ADDR", "")
		t.Setenv("RECIPEHUB_SYNC_TCP_ADDR", "")
		t.Setenv("RECIPEHUB_CORS_ORIGINS", "")

		cfg := LoadServerConfig()
		if cfg.HTTPAddr != ":8000" {
			t.Errorf("expected :8000, got %s", cfg.HTTPAddr)
		}
		if cfg.SyncTCPAddr != "" {
			t.Errorf("expected TCP feed disabled, got %s", cfg.SyncTCPAddr)
		}
		if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:8000" {
			t.Errorf("unexpected origins %v", cfg.CORSOrigins)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("RECIPEHUB_HTTP_ADDR", ":9999")
		t.Setenv("RECIPEHUB_CORS_ORIGINS", "http://a.test, ,http://b.test")

		cfg := LoadServerConfig()
		if cfg.HTTPAddr != ":9999" {
			t.Errorf("expected :9999, got %s", cfg.HTTPAddr)
		}
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
			t.Errorf("unexpected origins %v", cfg.CORSOrigins)
		}
	})
}

func TestLoadLLMConfig(t *testing.T) {
	t.Setenv("RECIPEHUB_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "gemini_key")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("RECIPEHUB_HTTP_TIMEOUT_SECONDS", "5")

	cfg := LoadLLMConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("expected provider gemini, got %s", cfg.Provider)
	}
	if cfg.GeminiKey != "gemini_key" {
		t.Errorf("expected gemini key, got %s", cfg.GeminiKey)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("expected default model, got %s", cfg.OpenAIModel)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Timeout)
	}
}

func TestHTTPTimeoutFallback(t *testing.T) {
	t.Setenv("RECIPEHUB_HTTP_TIMEOUT_SECONDS", "soon")
	if got := httpTimeout(); got != 60*time.Second {
		t.Errorf("expected fallback 60s, got %s", got)
	}
}

func TestLoadCurrency(t *testing.T) {
	t.Setenv("RECIPEHUB_CURRENCY", "eur")
	if got := LoadCurrency(); got != "EUR" {
		t.Errorf("expected EUR, got %s", got)
	}
}
