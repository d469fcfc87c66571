package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

func TestParseOffsetSuccess(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSeconds int
	}{
		{
			name:        "IST offset",
			input:       "+05:30",
			wantSeconds: 5*3600 + 30*60,
		},
		{
			name:        "UTC",
			input:       "+00:00",
			wantSeconds: 0,
		},
		{
			name:        "negative offset",
			input:       "-08:00",
			wantSeconds: -8 * 3600,
		},
		{
			name:        "max positive offset",
			input:       "+14:00",
			wantSeconds: 14 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := domain.ParseOffset(tt.input)

			require.NoError(t, err)

			_, offset := time.Now().In(loc).Zone()
			assert.Equal(t, tt.wantSeconds, offset)
		})
	}
}

func TestParseOffsetFailure(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "missing sign",
			input: "05:30",
		},
		{
			name:  "missing colon",
			input: "+0530",
		},
		{
			name:  "non-numeric",
			input: "+ab:cd",
		},
		{
			name:  "hours out of range",
			input: "+15:00",
		},
		{
			name:  "minutes out of range",
			input: "+05:60",
		},
		{
			name:  "IANA name instead of offset",
			input: "Asia/Kolkata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseOffset(tt.input)

			assert.Error(t, err)
		})
	}
}

func TestReferenceClockEvaluate(t *testing.T) {
	ist, err := domain.ParseOffset("+05:30")
	require.NoError(t, err)

	tests := []struct {
		name       string
		loc        *time.Location
		now        time.Time
		wantDate   string
		wantMinute int
	}{
		{
			name:       "UTC evening crosses into next local day",
			loc:        ist,
			now:        time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC),
			wantDate:   "2024-01-02",
			wantMinute: 0,
		},
		{
			name:       "local morning",
			loc:        ist,
			now:        time.Date(2024, 3, 1, 3, 35, 12, 0, time.UTC),
			wantDate:   "2024-03-01",
			wantMinute: 9*60 + 5,
		},
		{
			name:       "seconds are truncated to the minute bucket",
			loc:        ist,
			now:        time.Date(2024, 3, 1, 3, 35, 59, 0, time.UTC),
			wantDate:   "2024-03-01",
			wantMinute: 9*60 + 5,
		},
		{
			name:       "UTC zone is identity",
			loc:        time.UTC,
			now:        time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC),
			wantDate:   "2024-06-15",
			wantMinute: 23*60 + 59,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := domain.NewReferenceClock(tt.loc)

			window := clock.Evaluate(tt.now)

			assert.Equal(t, tt.wantDate, window.Date)
			assert.Equal(t, tt.wantMinute, window.MinuteOfDay)
		})
	}
}

func TestReferenceClockLocation(t *testing.T) {
	ist, err := domain.ParseOffset("+05:30")
	require.NoError(t, err)

	// The internal cron runner schedules in the clock's zone, so the
	// location must round-trip unchanged.
	assert.Same(t, ist, domain.NewReferenceClock(ist).Location())
}

func TestWindowMatches(t *testing.T) {
	tests := []struct {
		name           string
		current        int
		reminderMinute int
		width          int
		want           bool
	}{
		{
			name:           "exact match with zero width",
			current:        9*60 + 5,
			reminderMinute: 9*60 + 5,
			width:          0,
			want:           true,
		},
		{
			name:           "one minute late does not match with zero width",
			current:        9*60 + 6,
			reminderMinute: 9*60 + 5,
			width:          0,
			want:           false,
		},
		{
			name:           "one minute early does not match",
			current:        9*60 + 4,
			reminderMinute: 9*60 + 5,
			width:          0,
			want:           false,
		},
		{
			name:           "within widened window",
			current:        9*60 + 7,
			reminderMinute: 9*60 + 5,
			width:          2,
			want:           true,
		},
		{
			name:           "past the widened window",
			current:        9*60 + 8,
			reminderMinute: 9*60 + 5,
			width:          2,
			want:           false,
		},
		{
			name:           "future reminder never matches regardless of width",
			current:        9 * 60,
			reminderMinute: 9*60 + 1,
			width:          5,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := domain.Window{Date: "2024-03-01", MinuteOfDay: tt.current}

			assert.Equal(t, tt.want, window.Matches(tt.reminderMinute, tt.width))
		})
	}
}
