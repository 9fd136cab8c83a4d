package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"paperchat/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Chat            handlers.ChatService
	Search          handlers.SearchService
	Recommend       handlers.RecommendService
	Interactions    handlers.InteractionAppender
	Papers          handlers.PaperWriter
	Pipeline        handlers.IngestPipeline
	VectorStore     handlers.CollectionChecker
	DB              *sql.DB
	PaperCollection string
	PaperLimit      int
	TripleLimit     int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.Chat, deps.PaperLimit, deps.TripleLimit)
	searchHandler := handlers.NewSearchHandler(deps.Search)
	recommendHandler := handlers.NewRecommendHandler(deps.Recommend)
	interactionHandler := handlers.NewInteractionHandler(deps.Interactions)
	ingestHandler := handlers.NewIngestHandler(deps.Papers, deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.DB, deps.PaperCollection)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Post("/chat/with-kg", chatHandler.ChatWithKG)
		r.Post("/chat/stream", chatHandler.ChatStream)
		r.Get("/search", searchHandler.Search)
		r.Get("/recommendations/{paperID}", recommendHandler.Recommend)
		r.Post("/papers/{paperID}/interactions", interactionHandler.Record)
		r.Post("/ingest", ingestHandler.Ingest)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
