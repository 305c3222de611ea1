package accounting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"json number", `1234.5`, "1234.5"},
		{"decimal string", `"1234.50"`, "1234.5"},
		{"thousands separators", `"1,234.50"`, "1234.5"},
		{"integer string", `"42"`, "42"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"garbage", `"not a number"`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a waveAmount
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &a))
			assert.True(t, a.Decimal.Equal(mustDecimal(t, tt.want)),
				"got %s, want %s", a.Decimal, tt.want)
		})
	}
}

func TestWaveAmountVariantsAgree(t *testing.T) {
	// The same value in every wire encoding must normalize identically.
	var fromNumber, fromString, fromSeparated waveAmount
	require.NoError(t, json.Unmarshal([]byte(`1234.5`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"1234.50"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`"1,234.50"`), &fromSeparated))

	assert.True(t, fromNumber.Decimal.Equal(fromString.Decimal))
	assert.True(t, fromString.Decimal.Equal(fromSeparated.Decimal))
}

func TestParseWaveTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
		want time.Time
	}{
		{"rfc3339", "2026-03-01T12:30:00Z", true, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"rfc3339 fractional", "2026-03-01T12:30:00.250Z", true, time.Date(2026, 3, 1, 12, 30, 0, 250_000_000, time.UTC)},
		{"no zone", "2026-03-01T12:30:00", true, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"bare date", "2026-03-01", true, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"empty", "", false, time.Time{}},
		{"garbage", "yesterday", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseWaveTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseWaveTimePtr(t *testing.T) {
	assert.Nil(t, parseWaveTimePtr(""))
	assert.Nil(t, parseWaveTimePtr("not a time"))

	got := parseWaveTimePtr("2026-03-01")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
}

func TestJoinInputErrors(t *testing.T) {
	errs := []waveInputError{
		{Code: "INVALID_EMAIL", Message: "email is malformed", Path: []string{"input", "email"}},
		{Code: "REQUIRED", Message: "name is required"},
	}

	joined := joinInputErrors(errs)
	assert.Equal(t, "input.email: email is malformed (INVALID_EMAIL); name is required (REQUIRED)", joined)
}
