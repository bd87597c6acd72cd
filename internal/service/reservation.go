package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

const (
	ActionClaimed  = "claimed"
	ActionReleased = "released"
)

// ToggleResult - the outcome of one click on a coordinate.
type ToggleResult struct {
	Action string `json:"action"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type ReservationService interface {
	Toggle(ctx context.Context, participant string, row, col int) (*ToggleResult, error)
}

type cellRepo interface {
	ListAll(ctx context.Context) (*entity.Board, error)
	TryInsert(ctx context.Context, row, col int, owner string) error
	DeleteIfOwnedAndUnlocked(ctx context.Context, row, col int, owner string) (int64, error)
	LockAllOwnedBy(ctx context.Context, owner string) (int64, error)
	CountLocked(ctx context.Context) (int64, error)
}

type reservationService struct {
	cellRepo cellRepo
}

func NewReservationService(cellRepo cellRepo) ReservationService {
	return &reservationService{
		cellRepo: cellRepo,
	}
}

// Toggle - one operation covers both directions: claim the square if it is
// free, release it if the caller already holds it unlocked. The snapshot read
// below only decides intent; exclusivity is settled by the store's own
// conditional insert and delete.
func (that *reservationService) Toggle(ctx context.Context, participant string, row, col int) (*ToggleResult, error) {
	board, err := that.cellRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	// Locked participants are rejected before anything else, even bad input.
	if board.IsLockedIn(participant) {
		return nil, apperror.ErrParticipantLocked
	}

	if !entity.InRange(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	cell, occupied := board.CellAt(row, col)

	if occupied && cell.Owner != participant {
		return nil, apperror.ErrSquareTaken
	}

	if occupied && cell.Locked {
		return nil, apperror.ErrSquareLocked
	}

	if occupied {
		deleted, err := that.cellRepo.DeleteIfOwnedAndUnlocked(ctx, row, col, participant)
		if err != nil {
			return nil, fmt.Errorf("failed to release square: %w", err)
		}

		// The square changed hands or locked between the snapshot and the
		// delete; the caller should re-read and retry.
		if deleted == 0 {
			return nil, apperror.ErrConflict
		}

		return &ToggleResult{Action: ActionReleased, Row: row, Col: col}, nil
	}

	if err = that.cellRepo.TryInsert(ctx, row, col, participant); err != nil {
		return nil, err
	}

	return &ToggleResult{Action: ActionClaimed, Row: row, Col: col}, nil
}
