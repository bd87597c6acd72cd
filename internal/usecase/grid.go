package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/squares-backend/internal/entity"
	"github.com/rocketscienceinc/squares-backend/internal/service"
)

type GridUseCase interface {
	GridView(ctx context.Context) (*service.GridView, error)
	ToggleSquare(ctx context.Context, participant string, row, col int) (*service.ToggleResult, error)
	LockIn(ctx context.Context, participant string) (*service.LockInResult, error)
	Winners(ctx context.Context) ([]service.QuarterWinner, error)
	SaveScores(ctx context.Context, scores *entity.Scores) error
	ClearConfig(ctx context.Context) error
}

type reservationService interface {
	Toggle(ctx context.Context, participant string, row, col int) (*service.ToggleResult, error)
}

type lockInService interface {
	LockIn(ctx context.Context, participant string) (*service.LockInResult, error)
}

type settlementService interface {
	GridView(ctx context.Context) (*service.GridView, error)
	Winners(ctx context.Context) ([]service.QuarterWinner, error)
	SaveScores(ctx context.Context, scores *entity.Scores) error
	ClearConfig(ctx context.Context) error
}

type gridUseCase struct {
	reservationService reservationService
	lockInService      lockInService
	settlementService  settlementService
}

func NewGridUseCase(reservationService reservationService, lockInService lockInService, settlementService settlementService) GridUseCase {
	return &gridUseCase{
		reservationService: reservationService,
		lockInService:      lockInService,
		settlementService:  settlementService,
	}
}

func (that *gridUseCase) GridView(ctx context.Context) (*service.GridView, error) {
	view, err := that.settlementService.GridView(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get grid view: %w", err)
	}

	return view, nil
}

func (that *gridUseCase) ToggleSquare(ctx context.Context, participant string, row, col int) (*service.ToggleResult, error) {
	result, err := that.reservationService.Toggle(ctx, participant, row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle square: %w", err)
	}

	return result, nil
}

func (that *gridUseCase) LockIn(ctx context.Context, participant string) (*service.LockInResult, error) {
	result, err := that.lockInService.LockIn(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("failed to lock in: %w", err)
	}

	return result, nil
}

func (that *gridUseCase) Winners(ctx context.Context) ([]service.QuarterWinner, error) {
	winners, err := that.settlementService.Winners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute winners: %w", err)
	}

	return winners, nil
}

func (that *gridUseCase) SaveScores(ctx context.Context, scores *entity.Scores) error {
	if err := that.settlementService.SaveScores(ctx, scores); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	return nil
}

func (that *gridUseCase) ClearConfig(ctx context.Context) error {
	if err := that.settlementService.ClearConfig(ctx); err != nil {
		return fmt.Errorf("failed to clear config: %w", err)
	}

	return nil
}
