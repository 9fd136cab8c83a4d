package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"paperchat/internal/config"
	"paperchat/internal/http"
	"paperchat/internal/ingest"
	"paperchat/internal/knowledge"
	"paperchat/internal/llm"
	"paperchat/internal/match"
	"paperchat/internal/rag"
	"paperchat/internal/recommend"
	"paperchat/internal/search"
	"paperchat/internal/storage"
	"paperchat/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers research questions over an indexed corpus of scientific
// papers: hybrid paper search, retrieval-augmented chat with optional
// knowledge-graph grounding, and per-user recommendations.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Paperchat API
//   description: |
//     Retrieval-augmented chat and search over an indexed corpus of
//     scientific papers, with knowledge-graph grounding and
//     recommendations driven by user activity.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	paperRepo := storage.NewPaperRepo(db)
	interactionRepo := storage.NewInteractionRepo(db)
	chatLogRepo := storage.NewChatLogRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collections exist with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.PapersCollection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure paper collection: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.KGCollection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure knowledge-graph collection: %v", err)
	}
	slog.Info("Qdrant collections ready",
		"papers", cfg.PapersCollection, "kg", cfg.KGCollection, "vector_size", cfg.VectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.VectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.VectorSize)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Assemble the retrieval and matching components
	searchEngine := search.NewEngine(embedder, vectorStore, paperRepo, cfg.PapersCollection)
	matcher := match.NewMatcher(embedder, cfg.PaperMatchThreshold, cfg.KGMatchThreshold)
	tripleRetriever := knowledge.NewRetriever(embedder, vectorStore, cfg.KGCollection)

	pipeline := ingest.NewPipeline(paperRepo, embedder, vectorStore, cfg.PapersCollection, cfg.KGCollection)

	orchestrator := rag.NewOrchestrator(
		llmClient,
		llmClient,
		searchEngine,
		tripleRetriever,
		paperRepo,
		matcher,
		chatLogRepo,
	)
	slog.Info("Chat orchestrator initialized")

	recommendEngine := recommend.NewEngine(interactionRepo, paperRepo, searchEngine)

	// Create router with dependencies
	deps := &http.Deps{
		Chat:            orchestrator,
		Search:          searchEngine,
		Recommend:       recommendEngine,
		Interactions:    interactionRepo,
		Papers:          paperRepo,
		Pipeline:        pipeline,
		VectorStore:     vectorStore,
		DB:              db,
		PaperCollection: cfg.PapersCollection,
		PaperLimit:      cfg.SearchCandidates,
		TripleLimit:     cfg.KGTripleLimit,
	}
	router := http.NewRouter(deps)

	// Start indexing in background after router is ready
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing of pending papers")
		if err := pipeline.Run(indexCtx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
