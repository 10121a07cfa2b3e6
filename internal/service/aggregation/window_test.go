package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

func TestWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
	}{
		{Daily, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{Weekly, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)},
		{Monthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Yearly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end, err := Window(tt.period, now, time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(start), "start = %s", start)
			assert.True(t, tomorrow.Equal(end), "end = %s", end)
		})
	}
}

func TestWindowAtYearBoundary(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	start, end, err := Window(Weekly, now, time.UTC)
	require.NoError(t, err)
	assert.True(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC).Equal(start))
	assert.True(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Equal(end))

	start, _, err = Window(Monthly, now, time.UTC)
	require.NoError(t, err)
	assert.True(t, now.Equal(start))
}

func TestWindowUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 23:30 UTC is already the next day two hours east.
	now := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)

	start, end, err := Window(Daily, now, loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC).Equal(start))
	assert.True(t, time.Date(2024, 3, 16, 22, 0, 0, 0, time.UTC).Equal(end))
}

func TestWindowUnknownPeriod(t *testing.T) {
	_, _, err := Window("hourly", time.Now(), time.UTC)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC).Equal(parsed))

	for _, bad := range []string{"", "29/02/2024", "2024-02-30", "yesterday"} {
		_, err := ParseDate(bad, time.UTC)
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr, "input %q", bad)
	}
}
