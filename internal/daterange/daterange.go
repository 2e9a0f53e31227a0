// Package daterange resolves relative date phrases ("last quarter",
// "past 30 days", "last august") into absolute calendar date ranges.
package daterange

import (
	"strings"
	"time"
)

// Range is a pair of calendar dates. A nil End means open-ended up to the
// present; both nil means no date constraint.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Between builds a closed range.
func Between(start, end time.Time) Range {
	s, e := Day(start), Day(end)
	return Range{Start: &s, End: &e}
}

// Since builds a range open towards the present.
func Since(start time.Time) Range {
	s := Day(start)
	return Range{Start: &s}
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// String renders the set bounds as dd-mm-yyyy joined by " to ".
func (r Range) String() string {
	parts := make([]string, 0, 2)
	for _, t := range []*time.Time{r.Start, r.End} {
		if t != nil {
			parts = append(parts, t.Format("02-01-2006"))
		}
	}
	return strings.Join(parts, " to ")
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type idiom struct {
	phrases []string
	resolve func(today time.Time) Range
}

// idioms are tried in order and the first whose phrase occurs wins. The
// weekend idioms sit before the week idioms because "last week" is a
// substring of "last weekend".
var idioms = []idiom{
	{[]string{"last weekend"}, lastWeekend},
	{[]string{"this weekend"}, thisWeekend},
	{[]string{"last week"}, lastWeek},
	{[]string{"this week"}, thisWeek},
	{[]string{"past week", "past 7 days"}, trailing(7)},
	{[]string{"last month"}, lastMonth},
	{[]string{"this month"}, thisMonth},
	{[]string{"past month", "past 30 days"}, trailing(30)},
	{[]string{"last year"}, lastYear},
	{[]string{"this year"}, thisYear},
	{[]string{"yesterday"}, yesterday},
	{[]string{"last quarter"}, lastQuarter},
	{[]string{"last 15 days"}, trailing(15)},
	{[]string{"last 2 weeks"}, trailing(14)},
	{[]string{"last 3 weeks"}, trailing(21)},
}

var months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Resolve maps phrase to an absolute range anchored at now. Unrecognized
// phrases yield the zero Range.
func Resolve(phrase string, now time.Time) Range {
	phrase = strings.ToLower(phrase)
	today := Day(now)

	for _, id := range idioms {
		for _, p := range id.phrases {
			if strings.Contains(phrase, p) {
				return id.resolve(today)
			}
		}
	}

	for i, name := range months {
		if strings.Contains(phrase, "last "+name) {
			return lastNamedMonth(today, time.Month(i+1))
		}
	}

	return Range{}
}

// weekday counts from Monday = 0.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func monday(today time.Time) time.Time {
	return today.AddDate(0, 0, -weekday(today))
}

func lastWeekend(today time.Time) Range {
	saturday := today.AddDate(0, 0, -(weekday(today) + 2))
	return Between(saturday, saturday.AddDate(0, 0, 1))
}

func thisWeekend(today time.Time) Range {
	saturday := monday(today).AddDate(0, 0, 5)
	sunday := saturday.AddDate(0, 0, 1)

	var r Range
	if !saturday.After(today) {
		r.Start = &saturday
	}
	if !sunday.After(today) {
		r.End = &sunday
	}
	return r
}

func lastWeek(today time.Time) Range {
	start := monday(today).AddDate(0, 0, -7)
	return Between(start, start.AddDate(0, 0, 6))
}

func thisWeek(today time.Time) Range {
	start := monday(today)
	end := start.AddDate(0, 0, 6)
	if end.After(today) {
		end = today
	}
	return Between(start, end)
}

func trailing(days int) func(time.Time) Range {
	return func(today time.Time) Range {
		return Between(today.AddDate(0, 0, -days), today)
	}
}

func lastMonth(today time.Time) Range {
	firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	end := firstOfThis.AddDate(0, 0, -1)
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, today.Location())
	return Between(start, end)
}

func thisMonth(today time.Time) Range {
	return Between(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today)
}

func lastYear(today time.Time) Range {
	y := today.Year() - 1
	return Between(
		time.Date(y, time.January, 1, 0, 0, 0, 0, today.Location()),
		time.Date(y, time.December, 31, 0, 0, 0, 0, today.Location()),
	)
}

func thisYear(today time.Time) Range {
	return Between(time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()), today)
}

func yesterday(today time.Time) Range {
	d := today.AddDate(0, 0, -1)
	return Between(d, d)
}

// lastQuarter ends on the day before the first of the quarter's final month,
// so the range covers only two of the quarter's three months.
func lastQuarter(today time.Time) Range {
	quarter := (int(today.Month())-1)/3 + 1
	startMonth := 3*(quarter-2) + 1
	endMonth := startMonth + 2
	year := today.Year()
	if startMonth <= 0 {
		startMonth += 12
		endMonth += 12
		year--
	}
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, today.Location())
	end := time.Date(year, time.Month(endMonth), 1, 0, 0, 0, 0, today.Location()).AddDate(0, 0, -1)
	return Between(start, end)
}

// lastNamedMonth picks the named month in the current year when it has
// already started, otherwise the previous year.
func lastNamedMonth(today time.Time, m time.Month) Range {
	year := today.Year()
	if m > today.Month() {
		year--
	}
	start := time.Date(year, m, 1, 0, 0, 0, 0, today.Location())
	return Between(start, start.AddDate(0, 1, -1))
}
