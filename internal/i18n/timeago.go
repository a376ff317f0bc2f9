package i18n

import "time"

// Clock abstracts wall-clock time so relative formatting is deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var SystemClock Clock = systemClock{}

// FormatNotificationTime buckets a timestamp into a coarse relative label:
// just now, minutes, hours, or days ago (no upper bound). An unparsable
// timestamp yields "", the sentinel for "no relative time available".
func FormatNotificationTime(createdAt string, t TranslateFunc, clock Clock) string {
	if clock == nil {
		clock = SystemClock
	}
	parsed, err := parseTimestamp(createdAt)
	if err != nil {
		return ""
	}

	minutes := int(clock.Now().Sub(parsed).Minutes())
	var result string
	var terr error
	switch {
	case minutes < 1:
		result, terr = tryTranslate(t, "timeAgo.justNow")
	case minutes < 60:
		result, terr = tryTranslate(t, "timeAgo.minutesAgo", map[string]any{"count": minutes})
	case minutes < 24*60:
		result, terr = tryTranslate(t, "timeAgo.hoursAgo", map[string]any{"count": minutes / 60})
	default:
		result, terr = tryTranslate(t, "timeAgo.daysAgo", map[string]any{"count": minutes / (24 * 60)})
	}
	if terr != nil {
		return ""
	}
	return result
}

// parseTimestamp accepts RFC3339 and the two date shapes the API emits.
func parseTimestamp(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
