package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
	"github.com/rocketscienceinc/squares-backend/internal/service"
)

type gridUseCase interface {
	GridView(ctx context.Context) (*service.GridView, error)
	ToggleSquare(ctx context.Context, participant string, row, col int) (*service.ToggleResult, error)
	LockIn(ctx context.Context, participant string) (*service.LockInResult, error)
	Winners(ctx context.Context) ([]service.QuarterWinner, error)
	SaveScores(ctx context.Context, scores *entity.Scores) error
	ClearConfig(ctx context.Context) error
}

type authService interface {
	GenerateToken(email string) (string, error)
	ParseToken(tokenString string) (string, error)
}

type handlers struct {
	logger *slog.Logger
	grid   gridUseCase
	auth   authService
}

func newHandlers(logger *slog.Logger, grid gridUseCase, auth authService) *handlers {
	return &handlers{
		logger: logger.With("component", "handlers"),
		grid:   grid,
		auth:   auth,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetGrid(w http.ResponseWriter, r *http.Request) {
	view, err := that.grid.GridView(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *handlers) ToggleSquare(w http.ResponseWriter, r *http.Request) {
	participant, err := that.resolveParticipant(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	var request struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}

	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := that.grid.ToggleSquare(r.Context(), participant, request.Row, request.Col)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *handlers) LockIn(w http.ResponseWriter, r *http.Request) {
	participant, err := that.resolveParticipant(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	result, err := that.grid.LockIn(r.Context(), participant)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *handlers) GetWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := that.grid.Winners(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]any{"winners": winners})
}

func (that *handlers) PutScores(w http.ResponseWriter, r *http.Request) {
	var scores entity.Scores

	if err := json.NewDecoder(r.Body).Decode(&scores); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for quarter := 0; quarter < entity.Quarters; quarter++ {
		if (scores.Home[quarter] != nil && *scores.Home[quarter] < 0) ||
			(scores.Away[quarter] != nil && *scores.Away[quarter] < 0) {
			http.Error(w, "Scores must be non-negative", http.StatusBadRequest)
			return
		}
	}

	if err := that.grid.SaveScores(r.Context(), &scores); err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, &scores)
}

func (that *handlers) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	if err := that.grid.ClearConfig(r.Context()); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveParticipant - the identity boundary: a session token from the cookie
// or the Authorization header resolves to a case-normalized participant
// identifier, or the request is unauthenticated.
func (that *handlers) resolveParticipant(r *http.Request) (string, error) {
	tokenString := ""

	if cookie, err := r.Cookie("auth_token"); err == nil {
		tokenString = cookie.Value
	} else if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}

	if tokenString == "" {
		return "", apperror.ErrUnauthenticated
	}

	return that.auth.ParseToken(tokenString)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeError - maps the error taxonomy to HTTP statuses. Anything outside the
// taxonomy is a store failure and surfaces as unavailable, never as a domain
// outcome.
func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusServiceUnavailable

	switch {
	case errors.Is(err, apperror.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrSquareTaken),
		errors.Is(err, apperror.ErrSquareLocked),
		errors.Is(err, apperror.ErrParticipantLocked):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, apperror.ErrNoSquaresToLock),
		errors.Is(err, apperror.ErrAlreadyLockedIn):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusServiceUnavailable {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, map[string]string{"error": err.Error()})
}
