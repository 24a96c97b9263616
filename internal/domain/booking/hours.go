package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday names as stored on OpeningHours rows, indexed by time.Weekday.
var DayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

const MinutesPerDay = 24 * 60

func DayNameFor(date time.Time) string {
	return DayNames[int(date.Weekday())]
}

// ToMinutes converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	if len(hhmm) > 5 {
		hhmm = hhmm[:5]
	}
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time out of range %q", hhmm)
	}
	return h*60 + m, nil
}

func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Range is a half-open interval [Start, End) in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// Overlaps uses half-open semantics: touching endpoints do not conflict.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// ClipToDay reduces an absolute time-off interval to the given calendar
// day's minutes-since-midnight window. The caller guarantees the interval
// intersects the day; endpoints on other days clip to 0 / 24h.
func ClipToDay(dateISO string, start, end time.Time) Range {
	r := Range{Start: 0, End: MinutesPerDay}
	if start.Format("2006-01-02") == dateISO {
		r.Start = start.Hour()*60 + start.Minute()
	}
	if end.Format("2006-01-02") == dateISO {
		r.End = end.Hour()*60 + end.Minute()
	}
	return r
}
