package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

// setRequired sets the minimal environment for Load to succeed and points
// the database at a temp directory so tests leave no files behind.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("QDRANT_VECTOR_SIZE", "1024")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "paperchat.db"))
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLMModelName != "qwen2.5-14b-instruct" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
	if cfg.EmbeddingModelName != "bge-m3" {
		t.Errorf("EmbeddingModelName = %q", cfg.EmbeddingModelName)
	}
	if cfg.PapersCollection != "papers" || cfg.KGCollection != "kg_triples" {
		t.Errorf("collections = %q, %q", cfg.PapersCollection, cfg.KGCollection)
	}
	if cfg.VectorSize != 1024 {
		t.Errorf("VectorSize = %d", cfg.VectorSize)
	}
	if cfg.SearchCandidates != 5 || cfg.KGTripleLimit != 12 {
		t.Errorf("limits = %d, %d", cfg.SearchCandidates, cfg.KGTripleLimit)
	}
	if cfg.PaperMatchThreshold != 0.5 || cfg.KGMatchThreshold != 0.7 {
		t.Errorf("thresholds = %v, %v", cfg.PaperMatchThreshold, cfg.KGMatchThreshold)
	}
	if cfg.APIPort != "8000" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_MissingVectorSize(t *testing.T) {
	t.Setenv("QDRANT_VECTOR_SIZE", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without QDRANT_VECTOR_SIZE")
	}
}

func TestLoad_InvalidVectorSize(t *testing.T) {
	for _, value := range []string{"abc", "0", "-5"} {
		t.Setenv("QDRANT_VECTOR_SIZE", value)
		if _, err := Load(); err == nil {
			t.Errorf("Load() should reject QDRANT_VECTOR_SIZE=%q", value)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_MODEL", "other-model")
	t.Setenv("SEARCH_CANDIDATES", "9")
	t.Setenv("PAPER_MATCH_THRESHOLD", "0.65")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLMModelName != "other-model" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
	if cfg.SearchCandidates != 9 {
		t.Errorf("SearchCandidates = %d", cfg.SearchCandidates)
	}
	if cfg.PaperMatchThreshold != 0.65 {
		t.Errorf("PaperMatchThreshold = %v", cfg.PaperMatchThreshold)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidTuning(t *testing.T) {
	setRequired(t)
	t.Setenv("SEARCH_CANDIDATES", "zero")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a non-numeric SEARCH_CANDIDATES")
	}
}
