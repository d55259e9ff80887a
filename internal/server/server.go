package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spendify/apiserver/config"
	"github.com/spendify/apiserver/internal/credentials"
	"github.com/spendify/apiserver/internal/db"
	"github.com/spendify/apiserver/internal/handlers"
	"github.com/spendify/apiserver/internal/services"
	"github.com/spendify/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	snapshots := store.NewSnapshotStore(dbConn)
	userStore := store.NewUserStore(dbConn)
	historyStore := store.NewHistoryStore(dbConn)

	accountService := services.NewAccountService(userStore, credentials.NewDefault())
	ledgerService := services.NewLedgerService(historyStore)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	handlers.AccountRouter(router, accountService, snapshots)
	handlers.LedgerRouter(router, ledgerService, snapshots)

	// Everything that is not an API endpoint falls through to the client assets.
	static := handlers.NewStaticHandler(cfg.StaticDir)
	router.NotFound(static.ServeHTTP)

	port := cfg.ServerPort
	if port == 0 {
		port = 8082
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
