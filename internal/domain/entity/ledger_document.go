package entity

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerDocument is the database row holding one serialized ledger. The
// namespace plays the role of the storage key.
type LedgerDocument struct {
	Namespace string         `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

// TableName returns the table name for LedgerDocument
func (LedgerDocument) TableName() string {
	return "ledger_documents"
}
