package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

// cellsKey - a single hash holds the whole grid, one field per owned square.
// Keeping every square under one key lets the Lua scripts below touch the grid
// atomically without WATCH loops.
const cellsKey = "grid:cells"

type CellRepository interface {
	ListAll(ctx context.Context) (*entity.Board, error)
	TryInsert(ctx context.Context, row, col int, owner string) error
	DeleteIfOwnedAndUnlocked(ctx context.Context, row, col int, owner string) (int64, error)
	LockAllOwnedBy(ctx context.Context, owner string) (int64, error)
	CountLocked(ctx context.Context) (int64, error)
}

type dbCell struct {
	client *redis.Client
}

func NewCellRepository(client *redis.Client) CellRepository {
	return &dbCell{
		client: client,
	}
}

// cellValue - the JSON stored per hash field. The coordinate lives in the
// field name, so only ownership state is stored here.
type cellValue struct {
	Owner  string `json:"owner"`
	Locked bool   `json:"locked"`
}

func cellField(row, col int) string {
	return strconv.Itoa(row) + ":" + strconv.Itoa(col)
}

func parseCellField(field string) (int, int, error) {
	parts := strings.SplitN(field, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed cell field %q", field)
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell row %q: %w", field, err)
	}

	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell col %q: %w", field, err)
	}

	return row, col, nil
}

// deleteIfOwnedAndUnlockedScript - conditional delete: removes the square only
// while it is still owned by the caller and not yet locked. Running as a script
// keeps the check and the delete in one atomic step.
var deleteIfOwnedAndUnlockedScript = redis.NewScript(`
local value = redis.call('HGET', KEYS[1], ARGV[1])
if not value then
	return 0
end
local cell = cjson.decode(value)
if cell.owner == ARGV[2] and not cell.locked then
	return redis.call('HDEL', KEYS[1], ARGV[1])
end
return 0
`)

// lockAllOwnedByScript - all-or-nothing bulk lock of every square owned by a
// participant. Redis runs the script atomically, so a participant's squares can
// never be observed half locked.
var lockAllOwnedByScript = redis.NewScript(`
local updated = 0
local cells = redis.call('HGETALL', KEYS[1])
for i = 1, #cells, 2 do
	local cell = cjson.decode(cells[i + 1])
	if cell.owner == ARGV[1] and not cell.locked then
		cell.locked = true
		redis.call('HSET', KEYS[1], cells[i], cjson.encode(cell))
		updated = updated + 1
	end
end
return updated
`)

var countLockedScript = redis.NewScript(`
local locked = 0
for _, value in ipairs(redis.call('HVALS', KEYS[1])) do
	if cjson.decode(value).locked then
		locked = locked + 1
	end
end
return locked
`)

func (that *dbCell) ListAll(ctx context.Context) (*entity.Board, error) {
	fields, err := that.client.HGetAll(ctx, cellsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	board := &entity.Board{}
	for field, raw := range fields {
		row, col, err := parseCellField(field)
		if err != nil {
			return nil, err
		}

		var value cellValue
		if err = json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cell %s: %w", field, err)
		}

		board.Cells = append(board.Cells, entity.Cell{
			Row:    row,
			Col:    col,
			Owner:  value.Owner,
			Locked: value.Locked,
		})
	}

	return board, nil
}

// TryInsert - claims an unowned square. HSETNX is the authoritative
// exclusivity check: when two claims race for the same coordinate exactly one
// insert wins and the loser gets ErrSquareTaken.
func (that *dbCell) TryInsert(ctx context.Context, row, col int, owner string) error {
	value, err := json.Marshal(cellValue{Owner: owner})
	if err != nil {
		return fmt.Errorf("could not marshal cell: %w", err)
	}

	inserted, err := that.client.HSetNX(ctx, cellsKey, cellField(row, col), value).Result()
	if err != nil {
		return fmt.Errorf("failed to insert cell: %w", err)
	}

	if !inserted {
		return apperror.ErrSquareTaken
	}

	return nil
}

func (that *dbCell) DeleteIfOwnedAndUnlocked(ctx context.Context, row, col int, owner string) (int64, error) {
	deleted, err := deleteIfOwnedAndUnlockedScript.Run(ctx, that.client, []string{cellsKey}, cellField(row, col), owner).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to delete cell: %w", err)
	}

	return deleted, nil
}

func (that *dbCell) LockAllOwnedBy(ctx context.Context, owner string) (int64, error) {
	locked, err := lockAllOwnedByScript.Run(ctx, that.client, []string{cellsKey}, owner).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to lock cells: %w", err)
	}

	return locked, nil
}

func (that *dbCell) CountLocked(ctx context.Context) (int64, error) {
	count, err := countLockedScript.Run(ctx, that.client, []string{cellsKey}).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to count locked cells: %w", err)
	}

	return count, nil
}
