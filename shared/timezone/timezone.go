// Package timezone holds the application clock.
//
// Audit metadata is rendered in APP_TIMEZONE. Reservation instants, month
// windows and cache keys are always UTC and use the helpers at the bottom of
// this file.
package timezone

import (
	"lodging/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const day = 24 * time.Hour

var (
	appLocation = time.UTC
	locOnce     sync.Once
)

func location() *time.Location {
	locOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC")

			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, using UTC")

			return
		}

		appLocation = loc

		log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
	})

	return appLocation
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse reads value in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// UTCDay truncates t to midnight of its UTC calendar day.
func UTCDay(t time.Time) time.Time {
	return t.UTC().Truncate(day)
}

// MonthStart is the first instant of month in UTC. Months outside [1, 12]
// are normalized by time.Date.
func MonthStart(month, year int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
