package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Directories
	OutputDir string
	ConfigDir string

	// GenAI provider credentials. Optional at startup: they can also be
	// set at runtime through the config endpoint and persisted to .env.
	GenAIAPIURL string
	GenAIAPIKey string

	// Auth. Empty means the API is open.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	DefaultChunkSize    int
	DefaultChunkOverlap int

	// Job state
	JobTTL time.Duration

	// Output file retention
	OutputTTL       time.Duration
	CleanupInterval time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8001"),

		OutputDir: envOr("OUTPUT_DIR", "outputs"),
		ConfigDir: envOr("CONFIG_DIR", "."),

		GenAIAPIURL: os.Getenv("GENAI_API_URL"),
		GenAIAPIKey: os.Getenv("GENAI_API_KEY"),

		APIKey: os.Getenv("TRANSUDECK_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultChunkSize:    envInt("DEFAULT_CHUNK_SIZE", 1500),
		DefaultChunkOverlap: envInt("DEFAULT_CHUNK_OVERLAP", 200),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		OutputTTL:       envDuration("OUTPUT_TTL", 24*time.Hour),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultChunkSize <= 0 {
		cfg.DefaultChunkSize = 1500
	}
	if cfg.DefaultChunkOverlap <= 0 {
		cfg.DefaultChunkOverlap = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.OutputTTL <= 0 {
		cfg.OutputTTL = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 1 * time.Hour
	}

	return cfg
}

// EnvFilePath is where runtime-set GenAI credentials are persisted.
func (c Config) EnvFilePath() string {
	return filepath.Join(c.ConfigDir, ".env")
}

// GenAIConfigured reports whether the GenAI provider can be called.
func (c Config) GenAIConfigured() bool {
	return strings.TrimSpace(c.GenAIAPIKey) != "" && strings.TrimSpace(c.GenAIAPIURL) != ""
}

// LoadEnvFile reads GenAI credentials from the .env file, overriding the
// current values when present. Returns true if the file existed.
func (c *Config) LoadEnvFile() (bool, error) {
	f, err := os.Open(c.EnvFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "GENAI_API_KEY":
			c.GenAIAPIKey = value
		case "GENAI_API_URL":
			c.GenAIAPIURL = value
		}
	}
	if err := scanner.Err(); err != nil {
		return true, fmt.Errorf("read env file: %w", err)
	}
	return true, nil
}

// SaveEnvFile persists GenAI credentials to the .env file and updates the
// in-memory values.
func (c *Config) SaveEnvFile(apiKey, apiURL string) error {
	if err := os.MkdirAll(c.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	content := fmt.Sprintf("GENAI_API_KEY=%s\nGENAI_API_URL=%s\n", apiKey, apiURL)
	if err := os.WriteFile(c.EnvFilePath(), []byte(content), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	c.GenAIAPIKey = apiKey
	c.GenAIAPIURL = apiURL
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
