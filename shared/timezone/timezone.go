// Package timezone keeps every timestamp and calendar date the application writes
// in one configured location (APP_TIMEZONE, default UTC).
package timezone

import (
	"stay/config"
	"stay/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")
		appLocation = time.UTC

		return
	}

	appLocation = loc
}

// Now returns the current time in the application timezone, truncated to the
// microsecond precision Postgres stores.
func Now() time.Time {
	return time.Now().In(GetLocation()).Truncate(time.Microsecond)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// ParseDay parses a YYYY-MM-DD calendar date.
func ParseDay(value string) (time.Time, error) {
	return Parse(constant.DayFormat, value)
}

// FormatDay renders a calendar date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(constant.DayFormat)
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
