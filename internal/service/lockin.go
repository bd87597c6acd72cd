package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

const notifyTimeout = 10 * time.Second

// LockInResult - how many squares were frozen, plus the settlement config when
// this call completed (or observed) the full grid.
type LockInResult struct {
	LockedCount int64              `json:"locked_count"`
	Config      *entity.GameConfig `json:"config,omitempty"`
}

type LockInService interface {
	LockIn(ctx context.Context, participant string) (*LockInResult, error)
}

type gameConfigRepo interface {
	Get(ctx context.Context) (*entity.GameConfig, error)
	InsertIfAbsent(ctx context.Context, config *entity.GameConfig) (bool, error)
	Clear(ctx context.Context) error
}

type notifier interface {
	Notify(ctx context.Context, participant string, count int) error
}

type lockInService struct {
	logger     *slog.Logger
	cellRepo   cellRepo
	configRepo gameConfigRepo
	notifier   notifier
}

func NewLockInService(logger *slog.Logger, cellRepo cellRepo, configRepo gameConfigRepo, notifier notifier) LockInService {
	return &lockInService{
		logger:     logger.With("component", "lockin"),
		cellRepo:   cellRepo,
		configRepo: configRepo,
		notifier:   notifier,
	}
}

// LockIn - freezes every square the participant owns, then, if that made the
// grid full, runs the one-time settlement generation.
func (that *lockInService) LockIn(ctx context.Context, participant string) (*LockInResult, error) {
	board, err := that.cellRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	owned := board.OwnedBy(participant)
	if len(owned) == 0 {
		return nil, apperror.ErrNoSquaresToLock
	}

	if board.IsLockedIn(participant) {
		return nil, apperror.ErrAlreadyLockedIn
	}

	locked, err := that.cellRepo.LockAllOwnedBy(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("failed to lock squares: %w", err)
	}

	// Everything the snapshot showed was released before the bulk lock ran.
	if locked == 0 {
		return nil, apperror.ErrConflict
	}

	// Fire-and-forget: the lock-in already happened and a flaky sink must not
	// undo it or fail the request.
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if notifyErr := that.notifier.Notify(notifyCtx, participant, int(locked)); notifyErr != nil {
			that.logger.Warn("lock-in notification failed", "participant", participant, "error", notifyErr)
		}
	}()

	result := &LockInResult{LockedCount: locked}

	count, err := that.cellRepo.CountLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count locked squares: %w", err)
	}

	if count == entity.TotalCells {
		config, err := that.ensureConfig(ctx)
		if err != nil {
			return nil, err
		}

		result.Config = config
	}

	return result, nil
}

// ensureConfig - the exactly-once generation step. Concurrent lock-in calls
// can all observe the full grid; the SETNX insert decides the single winner
// and every loser re-reads the winner's permutations.
func (that *lockInService) ensureConfig(ctx context.Context) (*entity.GameConfig, error) {
	config, err := that.configRepo.Get(ctx)
	if err == nil {
		return config, nil
	}

	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	generated := entity.NewGameConfig()

	inserted, err := that.configRepo.InsertIfAbsent(ctx, generated)
	if err != nil {
		return nil, fmt.Errorf("failed to store config: %w", err)
	}

	if inserted {
		that.logger.Info("grid full, settlement config generated",
			"row_sequence", generated.RowSequence, "col_sequence", generated.ColSequence)
		return generated, nil
	}

	// Lost the generation race; discard ours and use the stored pair.
	config, err = that.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read config: %w", err)
	}

	return config, nil
}
