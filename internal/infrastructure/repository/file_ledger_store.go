package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/milk-ledger/internal/domain/repository"
)

type fileLedgerStore struct {
	path   string
	logger *slog.Logger
}

// NewFileLedgerStore keeps the ledger as a JSON file at path, creating the
// parent directory if needed.
func NewFileLedgerStore(path string, logger *slog.Logger) (domainRepo.LedgerStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &fileLedgerStore{path: path, logger: loggerOrDefault(logger)}, nil
}

func (s *fileLedgerStore) Load(ctx context.Context) (*entity.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	return decodeLedger(s.logger, s.path, data), nil
}

// Save writes to a temporary file in the same directory and renames it over
// the previous document, so readers never see a partial write.
func (s *fileLedgerStore) Save(ctx context.Context, l *entity.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeLedger(l)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close ledger file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
