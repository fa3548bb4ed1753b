package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/milk-ledger/internal/domain/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormLedgerStore struct {
	db        *gorm.DB
	namespace string
	logger    *slog.Logger
}

// NewGormLedgerStore keeps the ledger as one row of ledger_documents. It
// works with any gorm dialect whose JSON column datatypes supports.
func NewGormLedgerStore(db *gorm.DB, namespace string, logger *slog.Logger) domainRepo.LedgerStore {
	return &gormLedgerStore{db: db, namespace: namespace, logger: loggerOrDefault(logger)}
}

func (r *gormLedgerStore) Load(ctx context.Context) (*entity.Ledger, error) {
	var doc entity.LedgerDocument
	err := r.db.WithContext(ctx).First(&doc, "namespace = ?", r.namespace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger document: %w", err)
	}
	return decodeLedger(r.logger, "db:"+r.namespace, doc.Data), nil
}

// Save upserts the row, so the first save creates it.
func (r *gormLedgerStore) Save(ctx context.Context, l *entity.Ledger) error {
	data, err := encodeLedger(l)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	doc := entity.LedgerDocument{Namespace: r.namespace, Data: datatypes.JSON(data)}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to write ledger document: %w", err)
	}
	return nil
}
