// Package timezone holds the hotel clock. Stay dates are calendar dates, so
// booking and room code work with Today and DateOf while audit and metadata
// timestamps use Now. The zone comes from APP_TIMEZONE and falls back to UTC.
package timezone

import (
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var location = loadLocation(config.Get().App.Timezone)

func loadLocation(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("APP_TIMEZONE is empty, hotel clock runs on UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msgf("unknown IANA zone, hotel clock runs on %s", fallbackZone)

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("hotel clock initialized")

	return loc
}

// Now is the current instant on the hotel clock.
func Now() time.Time {
	return time.Now().In(location)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location)
}

func GetLocation() *time.Location {
	return location
}

// Parse reads value as wall time on the hotel clock.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DateOf drops the clock part of t, keeping the calendar date t has in its own
// location. The result is midnight UTC so it compares equal to DATE columns.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the calendar date at the hotel right now.
func Today() time.Time {
	return DateOf(Now())
}

// ParseDate reads a YYYY-MM-DD stay date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value) //nolint:wrapcheck
}
