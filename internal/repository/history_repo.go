package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"sidrabill/internal/model"
)

const historyKey = "sidrabill:history"

// HistoryRepository persists the ordered log of finalized receipts
// (newest-first by insertion) as a single JSON snapshot.
type HistoryRepository interface {
	Load(ctx context.Context) ([]model.SavedReceipt, error)
	Save(ctx context.Context, records []model.SavedReceipt) error
}

type redisHistoryRepo struct{ rdb *redis.Client }

func NewHistoryRepository(rdb *redis.Client) HistoryRepository { return &redisHistoryRepo{rdb: rdb} }

func (r *redisHistoryRepo) Load(ctx context.Context) ([]model.SavedReceipt, error) {
	raw, err := r.rdb.Get(ctx, historyKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []model.SavedReceipt
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Str("key", historyKey).Msg("corrupt history snapshot, starting empty")
		return nil, nil
	}
	return records, nil
}

func (r *redisHistoryRepo) Save(ctx context.Context, records []model.SavedReceipt) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, historyKey, raw, 0).Err()
}
