package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUTCVariants(t *testing.T) {
	for _, value := range []string{
		"2026-01-04T00:30:00Z",
		"2026-01-04T00:30:00",
	} {
		parsed, err := ParseUTC(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, 30, parsed.Minute())
	}

	parsed, err := ParseUTC("2026-01-04")
	require.NoError(t, err)
	assert.Equal(t, 4, parsed.Day())
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t, "2026-01-04", DateOnly("2026-01-04T00:30:00Z"))
	assert.Equal(t, "", DateOnly("bad"))
}

func TestLocalDateFallsBackToToday(t *testing.T) {
	assert.Equal(t, LocalToday(), LocalDate(""))
	assert.Equal(t, LocalToday(), LocalDate("not-a-date"))
}
