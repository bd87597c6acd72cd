package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

const configKey = "grid:config"

type GameConfigRepository interface {
	Get(ctx context.Context) (*entity.GameConfig, error)
	InsertIfAbsent(ctx context.Context, config *entity.GameConfig) (bool, error)
	Clear(ctx context.Context) error
}

type dbGameConfig struct {
	client *redis.Client
}

func NewGameConfigRepository(client *redis.Client) GameConfigRepository {
	return &dbGameConfig{
		client: client,
	}
}

func (that *dbGameConfig) Get(ctx context.Context) (*entity.GameConfig, error) {
	response, err := that.client.Get(ctx, configKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	var config entity.GameConfig
	if err = json.Unmarshal([]byte(response), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// InsertIfAbsent - stores the permutations only if none exist yet. SETNX
// resolves the generation race: of any number of concurrent writers exactly
// one succeeds, and the rest must re-read the winner's value.
func (that *dbGameConfig) InsertIfAbsent(ctx context.Context, config *entity.GameConfig) (bool, error) {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return false, fmt.Errorf("could not marshal config: %w", err)
	}

	inserted, err := that.client.SetNX(ctx, configKey, configJSON, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set config: %w", err)
	}

	return inserted, nil
}

func (that *dbGameConfig) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, configKey).Err(); err != nil {
		return fmt.Errorf("failed to clear config: %w", err)
	}

	return nil
}
