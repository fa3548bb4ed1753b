package repository

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/milk-ledger/internal/domain/repository"
)

// memoryLedgerStore keeps the encoded document in process memory. Storing
// bytes rather than the ledger itself means callers can never alias the
// stored state.
type memoryLedgerStore struct {
	mu     sync.RWMutex
	data   []byte
	logger *slog.Logger
}

// NewMemoryLedgerStore returns a store that lives as long as the process.
func NewMemoryLedgerStore(logger *slog.Logger) domainRepo.LedgerStore {
	return &memoryLedgerStore{logger: loggerOrDefault(logger)}
}

func (s *memoryLedgerStore) Load(ctx context.Context) (*entity.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeLedger(s.logger, "memory", s.data), nil
}

func (s *memoryLedgerStore) Save(ctx context.Context, l *entity.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeLedger(l)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
