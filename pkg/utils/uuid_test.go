package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var shortID = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestNewShortID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewShortID()
		assert.Regexp(t, shortID, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 990)
}

func TestNewUniqueShortIDSkipsTaken(t *testing.T) {
	calls := 0
	id := NewUniqueShortID(func(string) bool {
		calls++
		return calls < 3
	})
	assert.Regexp(t, shortID, id)
	assert.Equal(t, 3, calls)

	assert.Regexp(t, shortID, NewUniqueShortID(nil))
}
