package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/api"
	"github.com/aura-labs/aura-api/internal/config"
	"github.com/aura-labs/aura-api/internal/core"
	"github.com/aura-labs/aura-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("Failed to load config", zap.Error(err))
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	primary, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer primary.Close()

	secondary := store.NewMemoryStore()

	ctx := context.Background()
	llmService, err := core.NewLLMService(ctx, cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	chatService := core.NewChatService(primary, secondary, llmService, logger)

	documentService, err := core.NewDocumentService(primary, core.NewRandomVerifier(), cfg.UploadDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize document service", zap.Error(err))
	}

	openAIService := core.NewOpenAIService(cfg.OpenAIAPIKey)
	searchService := core.NewSearchService(cfg.GoogleAPIKey, cfg.SearchEngineID)

	apiHandler := api.NewAPIHandler(cfg, chatService, documentService, primary, openAIService, searchService, logger)
	router := api.NewRouter(apiHandler, cfg.UploadDir)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Could not listen", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting gracefully")
}

func newLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if level == "DEBUG" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
