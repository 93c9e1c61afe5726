package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/api/handlers"
	appMiddleware "github.com/winnow-hq/winnow-api/internal/api/middlewares"
	"github.com/winnow-hq/winnow-api/internal/config"
	"github.com/winnow-hq/winnow-api/internal/core"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, log *zap.Logger, auth core.AuthClient, users core.UserStore, jds core.JDStore, obj core.ObjectClient, chat core.ChatModel) *Server {
	authHandler := handlers.NewAuthHandler(auth, users, log)
	jdHandler := handlers.NewJDHandler(jds, log)
	chatHandler := handlers.NewChatHandler(chat, log)
	attachmentHandler := handlers.NewAttachmentHandler(jds, obj, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/auth/register", authHandler.Register)
		api.Get("/jds/{id}", jdHandler.Get)
		api.Post("/gemini/chat", chatHandler.Chat)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.RequireAuth(auth))
			protected.Post("/auth/google-login", authHandler.GoogleLogin)
			protected.Get("/auth/me", authHandler.Me)
			protected.Post("/jds", jdHandler.Create)
			protected.Get("/jds", jdHandler.List)
			protected.Put("/jds/{id}", jdHandler.Update)
			protected.Delete("/jds/{id}", jdHandler.Delete)
			protected.Post("/jds/{id}/attachments", attachmentHandler.Upload)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	s.log.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Fatal("server error", zap.Error(err))
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
