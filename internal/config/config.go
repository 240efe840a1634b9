package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and passed by reference; business logic
// never reads the environment directly.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	// OpenAIAPIKey is only checked for presence here; the agent framework
	// consumes it through its own client configuration.
	OpenAIAPIKey  string
	AnalyzerModel string

	DataDir         string
	DefaultFilePath string

	WorkerCount        int
	WorkerPollInterval time.Duration
	JobLease           time.Duration

	APIToken string

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8000"),
		DatabaseURL: mustGetenv("DATABASE_URL"),

		OpenAIAPIKey:  mustGetenv("OPENAI_API_KEY"),
		AnalyzerModel: getenv("ANALYZER_MODEL", "gpt-4o"),

		DataDir:         getenv("DATA_DIR", "data"),
		DefaultFilePath: getenv("DEFAULT_FILE_PATH", "data/TSLA-Q2-2025-Update.pdf"),

		WorkerCount:        getenvInt("WORKER_COUNT", 2),
		WorkerPollInterval: getenvDuration("WORKER_POLL_INTERVAL", 800*time.Millisecond),
		JobLease:           getenvDuration("JOB_LEASE", 5*time.Minute),

		APIToken: mustGetenv("API_TOKEN"),

		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
