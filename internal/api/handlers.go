package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/config"
	"github.com/aura-labs/aura-api/internal/core"
	"github.com/aura-labs/aura-api/internal/store"
)

// Narrow views of the core services, so handler tests can substitute fakes.

type ChatService interface {
	SendMessage(ctx context.Context, userID, message string) (string, error)
	History(ctx context.Context, userID string) ([]store.Message, error)
}

type DocumentService interface {
	Upload(ctx context.Context, up core.Upload) (*store.Document, error)
	ByUser(ctx context.Context, userID string) ([]store.Document, error)
	ByID(ctx context.Context, id string) (*store.Document, error)
	Verify(ctx context.Context, id string) (*store.Document, error)
}

type OpenAIProber interface {
	Probe(ctx context.Context) (message, model string, err error)
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]core.SearchResult, string, error)
}

type APIHandler struct {
	cfg       *config.Config
	chat      ChatService
	documents DocumentService
	users     store.UserStore
	openAI    OpenAIProber
	search    Searcher
	logger    *zap.Logger
}

func NewAPIHandler(cfg *config.Config, chat ChatService, documents DocumentService,
	users store.UserStore, openAI OpenAIProber, search Searcher, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		cfg:       cfg,
		chat:      chat,
		documents: documents,
		users:     users,
		openAI:    openAI,
		search:    search,
		logger:    logger,
	}
}
