package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortIDLength is the length of ids handed out for customers and items.
const ShortIDLength = 8

// NewShortID returns 8 lowercase hex characters taken from a random UUID.
func NewShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:ShortIDLength]
}

// NewUniqueShortID draws short ids until taken reports false for one.
func NewUniqueShortID(taken func(id string) bool) string {
	for {
		id := NewShortID()
		if taken == nil || !taken(id) {
			return id
		}
	}
}
