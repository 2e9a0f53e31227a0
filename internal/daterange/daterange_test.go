package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/disaster-radar/internal/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Thursday afternoon.
var now = time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)

func requireRange(t *testing.T, r daterange.Range, start, end time.Time) {
	t.Helper()
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	require.Equal(t, start, *r.Start)
	require.Equal(t, end, *r.End)
}

func TestResolveIdioms(t *testing.T) {
	tests := []struct {
		phrase string
		start  time.Time
		end    time.Time
	}{
		{phrase: "last week", start: date(2026, 10, 5), end: date(2026, 10, 11)},
		{phrase: "this week", start: date(2026, 10, 12), end: date(2026, 10, 15)},
		{phrase: "past week", start: date(2026, 10, 8), end: date(2026, 10, 15)},
		{phrase: "past 7 days", start: date(2026, 10, 8), end: date(2026, 10, 15)},
		{phrase: "last month", start: date(2026, 9, 1), end: date(2026, 9, 30)},
		{phrase: "this month", start: date(2026, 10, 1), end: date(2026, 10, 15)},
		{phrase: "past month", start: date(2026, 9, 15), end: date(2026, 10, 15)},
		{phrase: "past 30 days", start: date(2026, 9, 15), end: date(2026, 10, 15)},
		{phrase: "last year", start: date(2025, 1, 1), end: date(2025, 12, 31)},
		{phrase: "this year", start: date(2026, 1, 1), end: date(2026, 10, 15)},
		{phrase: "yesterday", start: date(2026, 10, 14), end: date(2026, 10, 14)},
		{phrase: "last weekend", start: date(2026, 10, 10), end: date(2026, 10, 11)},
		{phrase: "last 15 days", start: date(2026, 9, 30), end: date(2026, 10, 15)},
		{phrase: "last 2 weeks", start: date(2026, 10, 1), end: date(2026, 10, 15)},
		{phrase: "last 3 weeks", start: date(2026, 9, 24), end: date(2026, 10, 15)},
		{phrase: "last august", start: date(2026, 8, 1), end: date(2026, 8, 31)},
		{phrase: "last october", start: date(2026, 10, 1), end: date(2026, 10, 31)},
		{phrase: "last december", start: date(2025, 12, 1), end: date(2025, 12, 31)},
		{phrase: "last february", start: date(2026, 2, 1), end: date(2026, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			requireRange(t, daterange.Resolve(tt.phrase, now), tt.start, tt.end)
		})
	}
}

func TestResolveIsCaseInsensitiveSubstring(t *testing.T) {
	requireRange(t, daterange.Resolve("floods during Last Month in kerala", now), date(2026, 9, 1), date(2026, 9, 30))
}

func TestResolveFirstIdiomWins(t *testing.T) {
	// "last week" is checked before "yesterday".
	requireRange(t, daterange.Resolve("yesterday and last week", now), date(2026, 10, 5), date(2026, 10, 11))
}

func TestResolveUnknownPhrase(t *testing.T) {
	for _, phrase := range []string{"", "today", "august 2023", "next week", "recently"} {
		r := daterange.Resolve(phrase, now)
		require.True(t, r.IsZero(), phrase)
	}
}

func TestResolveLastWeekAlwaysSpansPreviousMondayToSunday(t *testing.T) {
	for offset := 0; offset < 14; offset++ {
		anchor := now.AddDate(0, 0, offset)
		r := daterange.Resolve("last week", anchor)
		require.NotNil(t, r.Start)
		require.NotNil(t, r.End)

		require.Equal(t, time.Monday, r.Start.Weekday())
		require.Equal(t, time.Sunday, r.End.Weekday())
		require.Equal(t, 6*24*time.Hour, r.End.Sub(*r.Start))
		require.True(t, r.End.Before(daterange.Day(anchor)))
		require.True(t, daterange.Day(anchor).Sub(*r.End) <= 7*24*time.Hour)
	}
}

func TestResolveThisWeekend(t *testing.T) {
	t.Run("weekend in the future", func(t *testing.T) {
		r := daterange.Resolve("this weekend", now)
		require.True(t, r.IsZero())
	})

	t.Run("saturday", func(t *testing.T) {
		r := daterange.Resolve("this weekend", date(2026, 10, 17))
		require.NotNil(t, r.Start)
		require.Equal(t, date(2026, 10, 17), *r.Start)
		require.Nil(t, r.End)
	})

	t.Run("sunday", func(t *testing.T) {
		requireRange(t, daterange.Resolve("this weekend", date(2026, 10, 18)), date(2026, 10, 17), date(2026, 10, 18))
	})
}

func TestResolveThisWeekOnSundayEndsToday(t *testing.T) {
	requireRange(t, daterange.Resolve("this week", date(2026, 10, 18)), date(2026, 10, 12), date(2026, 10, 18))
}

// The last-quarter window stops one month short of the quarter's end.
func TestResolveLastQuarterEndsBeforeFinalMonth(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		start time.Time
		end   time.Time
	}{
		{name: "q4", now: now, start: date(2026, 7, 1), end: date(2026, 8, 31)},
		{name: "q2", now: date(2026, 5, 20), start: date(2026, 1, 1), end: date(2026, 2, 28)},
		{name: "q1 rolls back a year", now: date(2026, 2, 3), start: date(2025, 10, 1), end: date(2025, 11, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireRange(t, daterange.Resolve("last quarter", tt.now), tt.start, tt.end)
		})
	}
}

func TestResolveLastMonthInJanuary(t *testing.T) {
	requireRange(t, daterange.Resolve("last month", date(2026, 1, 9)), date(2025, 12, 1), date(2025, 12, 31))
}

func TestRangeString(t *testing.T) {
	require.Equal(t, "05-10-2026 to 11-10-2026", daterange.Between(date(2026, 10, 5), date(2026, 10, 11)).String())
	require.Equal(t, "15-10-2026", daterange.Since(now).String())
	require.Equal(t, "", daterange.Range{}.String())
}
