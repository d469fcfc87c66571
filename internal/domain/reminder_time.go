package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ReminderTime is a wall-clock reminder in the reference timezone,
// stored as "HH:MM" (24-hour). The zero value means "no reminder".
type ReminderTime struct {
	raw    string
	minute int
}

// ParseReminderTime validates an "HH:MM" string. An empty string is valid
// and yields a ReminderTime with IsSet() == false.
func ParseReminderTime(s string) (ReminderTime, error) {
	if s == "" {
		return ReminderTime{}, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ReminderTime{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return ReminderTime{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return ReminderTime{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, s)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return ReminderTime{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, s)
	}

	return ReminderTime{raw: s, minute: hours*60 + minutes}, nil
}

func (r ReminderTime) IsSet() bool {
	return r.raw != ""
}

// MinuteOfDay returns the reminder as minutes since local midnight.
func (r ReminderTime) MinuteOfDay() int {
	return r.minute
}

func (r ReminderTime) String() string {
	return r.raw
}
