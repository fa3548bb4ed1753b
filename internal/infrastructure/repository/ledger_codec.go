package repository

import (
	"encoding/json"
	"log/slog"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
)

// decodeLedger turns a stored document into a ledger. Empty or corrupt data
// yields an empty ledger; corruption is logged so it does not pass silently.
func decodeLedger(logger *slog.Logger, source string, data []byte) *entity.Ledger {
	if len(data) == 0 {
		return entity.NewLedger()
	}
	var l entity.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		logger.Warn("stored ledger is unreadable, starting empty", "source", source, "error", err)
		return entity.NewLedger()
	}
	return &l
}

func encodeLedger(l *entity.Ledger) ([]byte, error) {
	if l == nil {
		l = entity.NewLedger()
	}
	return json.Marshal(l)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
