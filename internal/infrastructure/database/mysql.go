package database

import (
	"fmt"
	"log/slog"

	"github.com/sangkips/milk-ledger/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMySQLDB creates a MySQL/MariaDB connection from the same DB_* settings.
func NewMySQLDB(cfg *config.DatabaseConfig, logLevel slog.Level) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(GormLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configurePool(db); err != nil {
		return nil, err
	}

	slog.Info("connected to MySQL", "host", cfg.Host, "database", cfg.Name)
	return db, nil
}
