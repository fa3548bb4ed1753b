package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, YearMonth{Year: 2024, Month: time.March}, ym)
	assert.Equal(t, "2024-03", ym.String())

	for _, bad := range []string{"", "2024-3", "2024-13", "24-03", "2024-03-01", "2024/03"} {
		_, err := ParseYearMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestYearMonthNavigation(t *testing.T) {
	jan := MustYearMonth("2024-01")
	assert.Equal(t, "2023-12", jan.Prev().String())
	assert.Equal(t, "2024-02", jan.Next().String())
	assert.Equal(t, "2025-01", MustYearMonth("2024-12").Next().String())
}

func TestYearMonthOf(t *testing.T) {
	ym, err := YearMonthOf("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", ym.String())

	_, err = YearMonthOf("2024-03-32")
	assert.Error(t, err)

	assert.True(t, ym.Contains("2024-03-31"))
	assert.False(t, ym.Contains("2024-04-01"))
	assert.False(t, ym.Contains("garbage"))
}

func TestYearMonthText(t *testing.T) {
	out, err := json.Marshal(map[string]YearMonth{"m": MustYearMonth("2024-11")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"m":"2024-11"}`, string(out))

	var ym YearMonth
	require.NoError(t, json.Unmarshal([]byte(`"2025-02"`), &ym))
	assert.Equal(t, MustYearMonth("2025-02"), ym)
	assert.Error(t, json.Unmarshal([]byte(`"Feb 2025"`), &ym))
}

func TestMonthKeyString(t *testing.T) {
	k := MonthKey{CustomerID: "ab12cd34", YearMonth: MustYearMonth("2024-03")}
	assert.Equal(t, "ab12cd34/2024-03", k.String())
}
