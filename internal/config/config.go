package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docchunk/internal/chunker"
)

type Config struct {
	Port string

	// Index service connection
	IndexURL    string
	IndexAPIKey string

	// Auth
	ServiceAPIKey string

	// Worker pool
	WorkerCount          int
	MaxQueueSize         int
	MaxConcurrentDeliver int
	DeliveryBatchSize    int

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	Chunking chunker.Config

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		IndexURL:    envOr("INDEX_URL", "http://localhost:8080"),
		IndexAPIKey: os.Getenv("INDEX_API_KEY"),

		ServiceAPIKey: os.Getenv("DOCCHUNK_API_KEY"),

		WorkerCount:          envInt("WORKER_COUNT", 4),
		MaxQueueSize:         envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentDeliver: envInt("MAX_CONCURRENT_DELIVER", 5),
		DeliveryBatchSize:    envInt("DELIVERY_BATCH_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		Chunking: chunker.Config{
			MinTokens:               envInt("CHUNK_MIN_TOKENS", 100),
			MaxTokens:               envInt("CHUNK_MAX_TOKENS", 1500),
			OverlapTokens:           envInt("CHUNK_OVERLAP_TOKENS", 50),
			MergeTinySections:       envBool("CHUNK_MERGE_TINY", true),
			PreserveHierarchy:       envBool("CHUNK_PRESERVE_HIERARCHY", true),
			PreferParagraphSplits:   envBool("CHUNK_PARAGRAPH_SPLITS", true),
			FallbackToFixedChunking: envBool("CHUNK_FIXED_FALLBACK", true),
		},

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentDeliver <= 0 {
		cfg.MaxConcurrentDeliver = 5
	}
	if cfg.DeliveryBatchSize <= 0 {
		cfg.DeliveryBatchSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.IndexAPIKey == "" {
		return fmt.Errorf("INDEX_API_KEY is required")
	}
	if c.ServiceAPIKey == "" {
		return fmt.Errorf("DOCCHUNK_API_KEY is required")
	}
	if err := c.Chunking.Validate(); err != nil {
		return fmt.Errorf("chunking defaults: %w", err)
	}
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
