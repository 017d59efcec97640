package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercisetracker/internal/tracker/domain/calendar"
)

func TestCalendar_ParseDay(t *testing.T) {
	cal := calendar.New(time.UTC)

	tests := []struct {
		input    string
		expected string
	}{
		{"2023-01-15", "Sun Jan 15 2023"},
		{"2023-01-01", "Sun Jan 01 2023"},
		{"2024-02-29", "Thu Feb 29 2024"},
		{"2023-01-15T23:59:59", "Sun Jan 15 2023"},
		{"2023-01-15T10:00:00Z", "Sun Jan 15 2023"},
		{"Sun Jan 15 2023", "Sun Jan 15 2023"},
		{"January 15, 2023", "Sun Jan 15 2023"},
		{"Sunday, January 15, 2023", "Sun Jan 15 2023"},
		{"Sun, January 15, 2023", "Sun Jan 15 2023"},
		{"Sunday, Jan 15, 2023", "Sun Jan 15 2023"},
		{"2023/01/15", "Sun Jan 15 2023"},
		{"  2023-01-15  ", "Sun Jan 15 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, cal.ParseDay(tt.input).String())
		})
	}
}

func TestCalendar_ParseInvalid(t *testing.T) {
	cal := calendar.New(nil)

	for _, input := range []string{"", "not a date", "2023-02-30", "abc"} {
		t.Run(input, func(t *testing.T) {
			d := cal.ParseDay(input)
			assert.False(t, d.IsValid())
			assert.Equal(t, calendar.InvalidText, d.String())
		})
	}
}

func TestCalendar_TimezoneShiftsDay(t *testing.T) {
	cal, err := calendar.Load("America/New_York")
	require.NoError(t, err)

	d := cal.ParseDay("2023-01-15T03:00:00Z")
	assert.Equal(t, "Sat Jan 14 2023", d.String())
}

func TestLoad_UnknownTimezone(t *testing.T) {
	cal, err := calendar.Load("Mars/Olympus_Mons")
	assert.Error(t, err)
	assert.Nil(t, cal)
}

func TestCalendar_Today(t *testing.T) {
	cal := calendar.New(time.UTC)
	now := time.Date(2026, time.October, 16, 18, 30, 0, 0, time.UTC)

	today := cal.Today(now)

	assert.Equal(t, "Fri Oct 16 2026", today.String())
	assert.True(t, today.NotAfter(cal.Parse("2026-10-16")), "today is truncated to midnight")
}

func TestDate_Comparisons(t *testing.T) {
	cal := calendar.New(time.UTC)
	day := cal.ParseDay("2023-01-15")

	assert.True(t, day.NotBefore(cal.Parse("2023-01-15")))
	assert.True(t, day.NotAfter(cal.Parse("2023-01-15")))
	assert.True(t, day.NotBefore(cal.Parse("2023-01-01")))
	assert.False(t, day.NotBefore(cal.Parse("2023-01-15T12:00:00")))
	assert.False(t, day.NotAfter(cal.Parse("2023-01-14")))

	invalid := calendar.Invalid()
	assert.False(t, invalid.NotBefore(cal.Parse("2000-01-01")))
	assert.False(t, invalid.NotAfter(cal.Parse("2100-01-01")))
	assert.False(t, day.NotBefore(calendar.Invalid()))
	assert.False(t, day.NotAfter(calendar.Invalid()))
}
