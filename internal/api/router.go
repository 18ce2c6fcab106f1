package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(apiHandler *APIHandler, uploadDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("AURA API is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Uploaded files are served straight off disk for the demo frontend.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", apiHandler.SendMessageHandler)
			r.Get("/history", apiHandler.ChatHistoryHandler)
			r.Get("/apikey", apiHandler.GeminiKeyHandler)
			r.Get("/openai-apikey", apiHandler.OpenAIKeyHandler)
			r.Get("/google-api", apiHandler.GoogleAPIHandler)
			r.Get("/test-openai", apiHandler.TestOpenAIHandler)
			r.Get("/test-google-search", apiHandler.TestGoogleSearchHandler)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", apiHandler.UploadDocumentHandler)
			r.Get("/", apiHandler.ListDocumentsHandler)
			r.Get("/{documentID}", apiHandler.GetDocumentHandler)
			r.Put("/{documentID}/verify", apiHandler.VerifyDocumentHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", apiHandler.RegisterHandler)
			r.Post("/login", apiHandler.LoginHandler)
			r.Get("/{userID}", apiHandler.GetUserHandler)
		})
	})

	return r
}
