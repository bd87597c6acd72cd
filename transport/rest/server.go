package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/squares-backend/internal/config"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	logger   *slog.Logger
	handlers *handlers
	auth     *authHandler
}

func New(logger *slog.Logger, conf *config.Config, grid gridUseCase, auth authService, user userUseCase) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: newHandlers(logger, grid, auth),
		auth:     newAuthHandler(logger, conf, auth, user),
	}
}

// Start - serves the API until the context is canceled, then shuts down
// gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlers.Ping)

	mux.HandleFunc("GET /auth/google", that.auth.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", that.auth.GoogleCallback)

	mux.HandleFunc("GET /api/grid", that.handlers.GetGrid)
	mux.HandleFunc("POST /api/square", that.handlers.ToggleSquare)
	mux.HandleFunc("POST /api/lockin", that.handlers.LockIn)
	mux.HandleFunc("GET /api/winners", that.handlers.GetWinners)
	mux.HandleFunc("PUT /api/scores", that.handlers.PutScores)
	mux.HandleFunc("DELETE /api/config", that.handlers.DeleteConfig)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		that.logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
