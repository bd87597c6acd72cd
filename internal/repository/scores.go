package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

type ScoresRepository interface {
	Get(ctx context.Context) (*entity.Scores, error)
	Save(ctx context.Context, scores *entity.Scores) error
}

type scoresRepository struct {
	conn *sql.DB
}

func NewScoresRepository(conn *sql.DB) ScoresRepository {
	return &scoresRepository{
		conn: conn,
	}
}

// Get - reads the singleton scores row. A grid with no scores yet returns an
// empty record, not an error.
func (that *scoresRepository) Get(ctx context.Context) (*entity.Scores, error) {
	query := `SELECT home_q1, home_q2, home_q3, home_q4, away_q1, away_q2, away_q3, away_q4
		FROM scores WHERE id = 1`

	var scores entity.Scores

	err := that.conn.QueryRowContext(ctx, query).Scan(
		&scores.Home[0], &scores.Home[1], &scores.Home[2], &scores.Home[3],
		&scores.Away[0], &scores.Away[1], &scores.Away[2], &scores.Away[3],
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Scores{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("can't read scores: %w", err)
	}

	return &scores, nil
}

func (that *scoresRepository) Save(ctx context.Context, scores *entity.Scores) error {
	query := `INSERT INTO scores (id, home_q1, home_q2, home_q3, home_q4, away_q1, away_q2, away_q3, away_q4)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			home_q1 = excluded.home_q1, home_q2 = excluded.home_q2,
			home_q3 = excluded.home_q3, home_q4 = excluded.home_q4,
			away_q1 = excluded.away_q1, away_q2 = excluded.away_q2,
			away_q3 = excluded.away_q3, away_q4 = excluded.away_q4`

	_, err := that.conn.ExecContext(ctx, query,
		scores.Home[0], scores.Home[1], scores.Home[2], scores.Home[3],
		scores.Away[0], scores.Away[1], scores.Away[2], scores.Away[3],
	)
	if err != nil {
		return fmt.Errorf("can't save scores: %w", err)
	}

	return nil
}
