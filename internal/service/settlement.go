package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

// GridView - the read-only projection served to clients: the grid snapshot,
// the settlement config once it exists, and the current scores.
type GridView struct {
	Cells  []entity.Cell      `json:"cells"`
	Config *entity.GameConfig `json:"config"`
	Scores *entity.Scores     `json:"scores"`
}

// QuarterWinner - the winning square for one quarter, or undefined while the
// config or either score is missing.
type QuarterWinner struct {
	Quarter int    `json:"quarter"`
	Defined bool   `json:"defined"`
	Row     int    `json:"row,omitempty"`
	Col     int    `json:"col,omitempty"`
	Owner   string `json:"owner,omitempty"`
}

type SettlementService interface {
	GridView(ctx context.Context) (*GridView, error)
	Winners(ctx context.Context) ([]QuarterWinner, error)
	SaveScores(ctx context.Context, scores *entity.Scores) error
	ClearConfig(ctx context.Context) error
}

type scoresRepo interface {
	Get(ctx context.Context) (*entity.Scores, error)
	Save(ctx context.Context, scores *entity.Scores) error
}

type settlementService struct {
	cellRepo   cellRepo
	configRepo gameConfigRepo
	scoresRepo scoresRepo
}

func NewSettlementService(cellRepo cellRepo, configRepo gameConfigRepo, scoresRepo scoresRepo) SettlementService {
	return &settlementService{
		cellRepo:   cellRepo,
		configRepo: configRepo,
		scoresRepo: scoresRepo,
	}
}

func (that *settlementService) GridView(ctx context.Context) (*GridView, error) {
	board, err := that.cellRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	config, err := that.configRepo.Get(ctx)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	scores, err := that.scoresRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}

	return &GridView{Cells: board.Cells, Config: config, Scores: scores}, nil
}

// Winners - resolves each quarter's winning square via the inverse permutation
// lookup. Quarters stay undefined until both scores exist and the config has
// been generated.
func (that *settlementService) Winners(ctx context.Context) ([]QuarterWinner, error) {
	view, err := that.GridView(ctx)
	if err != nil {
		return nil, err
	}

	board := entity.Board{Cells: view.Cells}

	winners := make([]QuarterWinner, 0, entity.Quarters)
	for quarter := 1; quarter <= entity.Quarters; quarter++ {
		winner := QuarterWinner{Quarter: quarter}

		if view.Config != nil {
			if homeDigit, awayDigit, ok := view.Scores.QuarterDigits(quarter); ok {
				if row, col, found := view.Config.WinningCell(homeDigit, awayDigit); found {
					winner.Defined = true
					winner.Row = row
					winner.Col = col

					if cell, occupied := board.CellAt(row, col); occupied {
						winner.Owner = cell.Owner
					}
				}
			}
		}

		winners = append(winners, winner)
	}

	return winners, nil
}

func (that *settlementService) SaveScores(ctx context.Context, scores *entity.Scores) error {
	if err := that.scoresRepo.Save(ctx, scores); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	return nil
}

// ClearConfig - administrative escape hatch; the grid itself is untouched.
func (that *settlementService) ClearConfig(ctx context.Context) error {
	if err := that.configRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear config: %w", err)
	}

	return nil
}
