package timezone_test

import (
	"lodging/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestFormatAndParse(t *testing.T) {
	loc := timezone.GetLocation()

	parsed, err := timezone.Parse("2006-01-02", "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), parsed)

	instant := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, instant.In(loc).Format(time.RFC3339), timezone.Format(instant, time.RFC3339))
}

func TestUTCDay(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "midnight", in: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "late evening", in: time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "offset crosses midnight", in: time.Date(2024, 3, 10, 22, 0, 0, 0, brt), want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.UTCDay(tt.in))
		})
	}
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), timezone.MonthStart(2, 2024))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), timezone.MonthStart(13, 2024))
}
