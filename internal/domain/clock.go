package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Window is one evaluation instant projected into the reference timezone:
// the local calendar date and the minute-of-day bucket.
type Window struct {
	Date        string
	MinuteOfDay int
}

// ReferenceClock projects absolute instants into the application's fixed
// reference timezone. All task dates and reminder times are interpreted in
// that zone regardless of server or caller locale.
type ReferenceClock struct {
	loc *time.Location
}

func NewReferenceClock(loc *time.Location) *ReferenceClock {
	return &ReferenceClock{loc: loc}
}

func (c *ReferenceClock) Evaluate(now time.Time) Window {
	local := now.In(c.loc)

	return Window{
		Date:        local.Format(DateLayout),
		MinuteOfDay: local.Hour()*60 + local.Minute(),
	}
}

func (c *ReferenceClock) Location() *time.Location {
	return c.loc
}

// Matches reports whether a reminder minute is due in this window. With
// width == 0 only exact-minute equality matches. A positive width also
// matches reminders up to width minutes in the past, so a trigger firing
// less often than once a minute can catch up; each covered minute matches
// every trigger inside the window, so the trigger cadence should not be
// shorter than width+1 minutes unless duplicate suppression is in place.
func (w Window) Matches(reminderMinute, width int) bool {
	diff := w.MinuteOfDay - reminderMinute

	return diff >= 0 && diff <= width
}

// ParseOffset converts an "+HH:MM" / "-HH:MM" UTC offset into a fixed
// time.Location named after the offset.
func ParseOffset(offset string) (*time.Location, error) {
	s := strings.TrimSpace(offset)
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("invalid UTC offset %q: must be ±HH:MM", offset)
	}

	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", offset, err)
	}

	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", offset, err)
	}

	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid UTC offset %q: out of range", offset)
	}

	seconds := (hours*60 + minutes) * 60
	if s[0] == '-' {
		seconds = -seconds
	}

	return time.FixedZone("UTC"+s, seconds), nil
}
