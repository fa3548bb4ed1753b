package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/milk-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/milk-ledger/internal/domain/repository"
)

type redisLedgerStore struct {
	client redis.Cmdable
	key    string
	logger *slog.Logger
}

// NewRedisLedgerStore keeps the ledger as a single string value under key.
func NewRedisLedgerStore(client redis.Cmdable, key string, logger *slog.Logger) domainRepo.LedgerStore {
	return &redisLedgerStore{client: client, key: key, logger: loggerOrDefault(logger)}
}

func (s *redisLedgerStore) Load(ctx context.Context) (*entity.Ledger, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger from redis: %w", err)
	}
	return decodeLedger(s.logger, "redis:"+s.key, data), nil
}

func (s *redisLedgerStore) Save(ctx context.Context, l *entity.Ledger) error {
	data, err := encodeLedger(l)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write ledger to redis: %w", err)
	}
	return nil
}
