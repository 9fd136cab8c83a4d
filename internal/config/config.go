package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	DBPath             string
	QdrantURL          string
	PapersCollection   string
	KGCollection       string
	VectorSize         int
	APIPort            string

	// Pipeline tuning. The two match thresholds are intentionally distinct:
	// triple matches are more visible to users, so they are held to a
	// stricter bar.
	SearchCandidates    int
	KGTripleLimit       int
	PaperMatchThreshold float64
	KGMatchThreshold    float64

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "qwen2.5-14b-instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "bge-m3"),
		DBPath:             getEnv("DB_PATH", "./data/paperchat.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		PapersCollection:   getEnv("QDRANT_PAPERS_COLLECTION", "papers"),
		KGCollection:       getEnv("QDRANT_KG_COLLECTION", "kg_triples"),
		APIPort:            getEnv("API_PORT", "8000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// QDRANT_VECTOR_SIZE must match the output vector size of the embedding
	// model (1024 for bge-m3). If the vector size changes, both Qdrant
	// collections must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	cfg.SearchCandidates, err = getEnvInt("SEARCH_CANDIDATES", 5)
	if err != nil {
		return nil, err
	}
	cfg.KGTripleLimit, err = getEnvInt("KG_TRIPLE_LIMIT", 12)
	if err != nil {
		return nil, err
	}
	cfg.PaperMatchThreshold, err = getEnvFloat("PAPER_MATCH_THRESHOLD", 0.5)
	if err != nil {
		return nil, err
	}
	cfg.KGMatchThreshold, err = getEnvFloat("KG_MATCH_THRESHOLD", 0.7)
	if err != nil {
		return nil, err
	}

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		cfg.LogLevel = slog.LevelInfo
	}

	// Create the data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}
