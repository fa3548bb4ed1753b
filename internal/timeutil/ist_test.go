package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, IST.String(), d.Location().String())

	for _, bad := range []string{"", "2024-3-5", "2024-02-30", "05-03-2024", "2024-03-05T00:00"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestCurrentYearMonthShape(t *testing.T) {
	ym := CurrentYearMonth()
	_, err := time.Parse(YearMonthLayout, ym)
	assert.NoError(t, err)
}
