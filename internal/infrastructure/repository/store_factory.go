package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangkips/milk-ledger/internal/config"
	domainRepo "github.com/sangkips/milk-ledger/internal/domain/repository"
	"github.com/sangkips/milk-ledger/internal/infrastructure/database"
	"gorm.io/gorm"
)

// OpenLedgerStore builds the store selected by STORE_DRIVER. The returned
// close function releases any connection the store holds.
func OpenLedgerStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domainRepo.LedgerStore, func() error, error) {
	noop := func() error { return nil }
	logger = loggerOrDefault(logger).With("store", cfg.Store.Driver)

	switch cfg.Store.Driver {
	case config.StoreFile, "":
		store, err := NewFileLedgerStore(cfg.Store.FilePath, logger)
		return store, noop, err

	case config.StoreMemory:
		return NewMemoryLedgerStore(logger), noop, nil

	case config.StoreRedis:
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisLedgerStore(client, cfg.Store.Namespace, logger), client.Close, nil

	case config.StorePostgres, config.StoreMySQL:
		var db *gorm.DB
		var err error
		if cfg.Store.Driver == config.StorePostgres {
			db, err = database.NewPostgresDB(&cfg.Database, cfg.App.SlogLevel())
		} else {
			db, err = database.NewMySQLDB(&cfg.Database, cfg.App.SlogLevel())
		}
		if err != nil {
			return nil, noop, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		return NewGormLedgerStore(db, cfg.Store.Namespace, logger), sqlDB.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
