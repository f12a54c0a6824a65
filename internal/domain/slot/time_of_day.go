package slot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"court-booking/internal/pkg/errs"
)

var ErrInvalidTimeOfDay = errs.New("invalid time of day, expected HH:MM")

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time on an unspecified date, in minutes since midnight.
// 24:00 is allowed so a slot may end at midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	t := TimeOfDay(hour*60 + minute)
	if t > minutesPerDay {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	return t, nil
}

// ParseTimeOfDay accepts "HH:MM" and the "HH:MM:SS" form storage returns.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	if len(parts) == 3 && parts[2] != "00" {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, invalid(ErrInvalidTimeOfDay)
	}
	return NewTimeOfDay(h, m)
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(fmt.Sprintf("slot: %q: %v", s, err))
	}
	return t
}

func FromDuration(d time.Duration) TimeOfDay {
	return TimeOfDay(d / time.Minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant this time of day falls on for the given date.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(t.Duration())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return invalid(ErrInvalidTimeOfDay)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}
