package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"sidrabill/internal/model"
)

const menuKey = "sidrabill:menu"

// MenuRepository is the durability boundary for the menu catalog. The whole
// catalog is loaded once at startup and rewritten in full on every mutation —
// last write wins, no merge.
type MenuRepository interface {
	Load(ctx context.Context) ([]model.MenuItem, error)
	Save(ctx context.Context, items []model.MenuItem) error
}

type redisMenuRepo struct{ rdb *redis.Client }

func NewMenuRepository(rdb *redis.Client) MenuRepository { return &redisMenuRepo{rdb: rdb} }

// Load returns nil (not an error) on first run or when the stored snapshot is
// corrupt, so the caller falls back to the seed catalog.
func (r *redisMenuRepo) Load(ctx context.Context) ([]model.MenuItem, error) {
	raw, err := r.rdb.Get(ctx, menuKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []model.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("key", menuKey).Msg("corrupt menu snapshot, falling back to defaults")
		return nil, nil
	}
	return items, nil
}

func (r *redisMenuRepo) Save(ctx context.Context, items []model.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, menuKey, raw, 0).Err()
}
