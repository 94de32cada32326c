package utils

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error; variables already set win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type ServerConfig struct {
	HTTPAddr    string
	SyncTCPAddr string // empty disables the TCP change feed
	CORSOrigins []string
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:    getEnv("RECIPEHUB_HTTP_ADDR", ":8000"),
		SyncTCPAddr: os.Getenv("RECIPEHUB_SYNC_TCP_ADDR"),
		CORSOrigins: splitList(getEnv("RECIPEHUB_CORS_ORIGINS", "http://localhost:8000")),
	}
}

type GrpcConfig struct {
	Addr string
}

func LoadGrpcConfig() GrpcConfig {
	return GrpcConfig{Addr: getEnv("RECIPEHUB_GRPC_ADDR", ":9090")}
}

type LLMConfig struct {
	Provider      string // "openai" or "gemini"
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	Timeout       time.Duration
}

func LoadLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:      strings.ToLower(getEnv("RECIPEHUB_LLM_PROVIDER", "openai")),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		Timeout:       httpTimeout(),
	}
}

type GeocodeConfig struct {
	BaseURL string
	Timeout time.Duration
}

func LoadGeocodeConfig() GeocodeConfig {
	return GeocodeConfig{
		BaseURL: getEnv("RECIPEHUB_POSTCODES_URL", "https://api.postcodes.io"),
		Timeout: httpTimeout(),
	}
}

// LoadCurrency is the ISO code the CLI prints prices in.
func LoadCurrency() string {
	return strings.ToUpper(getEnv("RECIPEHUB_CURRENCY", "GBP"))
}

func httpTimeout() time.Duration {
	raw := os.Getenv("RECIPEHUB_HTTP_TIMEOUT_SECONDS")
	if raw == "" {
		return 60 * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 60 * time.Second
	}
	return time.Duration(n) * time.Second
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
