package repository

import (
	"context"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
)

// LedgerStore persists the whole ledger as one document under one key.
type LedgerStore interface {
	// Load returns the stored ledger. Missing or unparsable data yields an
	// empty ledger and no error; connectivity and I/O failures are errors.
	Load(ctx context.Context) (*entity.Ledger, error)
	// Save overwrites the stored document unconditionally.
	Save(ctx context.Context, ledger *entity.Ledger) error
}
