// Package timehelper holds calendar arithmetic and time formatting helpers.
//
// Dates are represented as time.Time values at midnight; helpers that take a
// date ignore the clock part of their argument and keep its location.
package timehelper

import (
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/docker/go-units"
	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/kgerr"
	"github.com/xeonx/timeago"
)

var (
	NYC = mustLoad("America/New_York")
	UTC = time.UTC
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("timehelper: %v", err))
	}
	return loc
}

// Now is the current time in New York.
func Now() time.Time { return time.Now().In(NYC) }

func UTCNow() time.Time { return time.Now().In(UTC) }

// Today is the current New York date.
func Today() time.Time { return DateOf(Now()) }

// Date returns midnight of the given day in UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, UTC)
}

// DateOf drops the clock part of t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before date.
func StartOfWeek(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return DateOf(date).AddDate(0, 0, -offset)
}

// Epoch is the Unix epoch in UTC.
func Epoch() time.Time { return FromEpochSecsUTC(0) }

// FromEpochSecs converts fractional seconds since the epoch to New York time,
// rounded to the microsecond.
func FromEpochSecs(secs float64) time.Time {
	return fromEpochSecs(secs).In(NYC)
}

func FromEpochSecsUTC(secs float64) time.Time {
	return fromEpochSecs(secs).In(UTC)
}

func fromEpochSecs(secs float64) time.Time {
	whole := math.Floor(secs)
	micros := math.Round((secs - whole) * 1e6)
	return time.Unix(int64(whole), int64(micros)*int64(time.Microsecond))
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, kgerr.New("could not parse date", "s", s)
	}
	return t, nil
}

// RangeInclusive yields every date from start through end. start must not be
// after end.
func RangeInclusive(start, end time.Time) iter.Seq[time.Time] {
	if DateOf(start).After(DateOf(end)) {
		panic("timehelper: RangeInclusive start is after end")
	}
	return func(yield func(time.Time) bool) {
		end := DateOf(end)
		for it := DateOf(start); !it.After(end); it = it.AddDate(0, 0, 1) {
			if !yield(it) {
				return
			}
		}
	}
}

// RangeMonthsInclusive yields the first day of every month from start's month
// through end's month.
func RangeMonthsInclusive(start, end time.Time) iter.Seq[time.Time] {
	if DateOf(start).After(DateOf(end)) {
		panic("timehelper: RangeMonthsInclusive start is after end")
	}
	return func(yield func(time.Time) bool) {
		last := firstOfMonth(end)
		for it := firstOfMonth(start); !it.After(last); it = NextMonth(it) {
			if !yield(it) {
				return
			}
		}
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DaysInMonth(month time.Time) int {
	return firstOfMonth(month).AddDate(0, 1, -1).Day()
}

// LastMonth returns the first day of the month before date's.
func LastMonth(date time.Time) time.Time {
	return firstOfMonth(date).AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after date's.
func NextMonth(date time.Time) time.Time {
	return firstOfMonth(date).AddDate(0, 1, 0)
}

func RangeDaysOfMonth(month time.Time) iter.Seq[time.Time] {
	first := firstOfMonth(month)
	return RangeInclusive(first, first.AddDate(0, 0, DaysInMonth(month)-1))
}

// ToMonthStr formats date as YYYY-MM.
func ToMonthStr(date time.Time) string {
	return fmt.Sprintf("%d-%02d", date.Year(), int(date.Month()))
}

// ParseMonth parses YYYY-MM into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, kgerr.New("could not parse month", "s", s)
	}
	return t, nil
}

func MonthToQuarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}

func IsMonthInQuarter(month time.Month, quarter int) bool {
	return MonthToQuarter(month) == quarter
}

// Ago describes t relative to now, e.g. "3 hours ago".
func Ago(t time.Time) string {
	return timeago.NoMax(timeago.English).Format(t)
}

// HumanDuration describes d approximately, e.g. "About an hour".
func HumanDuration(d time.Duration) string {
	return units.HumanDuration(d)
}

// PrintTime starts a timer and returns a function that prints the elapsed
// time in gray to standard error. Use it with defer:
//
//	defer timehelper.PrintTime("build")()
func PrintTime(label string) func() {
	return PrintTimeTo(os.Stderr, label)
}

func PrintTimeTo(w io.Writer, label string) func() {
	start := time.Now()
	return func() {
		secs := time.Since(start).Seconds()
		if label != "" {
			colors.Print(w, colors.Gray(fmt.Sprintf("==> duration (%s): %.1fs", label, secs)))
		} else {
			colors.Print(w, colors.Gray(fmt.Sprintf("==> duration: %.1fs", secs)))
		}
	}
}
