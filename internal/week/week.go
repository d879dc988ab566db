package week

import (
	"fmt"
	"time"
)

// ISOKey identifies a week for the custom-goal engine, e.g. "2026-W07".
// MondayKey identifies a week for the daily-goal engine by its Monday date,
// e.g. "2026-02-09". The two schemes are kept as separate identifier spaces;
// unifying them would silently rename historical records.
type ISOKey string

type MondayKey string

const dateLayout = "2006-01-02"

// Window is one Monday-to-Sunday week: Start is Monday 00:00:00.000 and End
// is the following Sunday 23:59:59.999 in the calculator's location.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, inclusive of both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Calculator derives week boundaries and keys from a reference instant. The
// location is fixed at construction so the same instant always yields the
// same boundaries for the lifetime of the process.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{loc: loc}
}

// WindowFor returns the Monday-anchored week containing ref.
func (c *Calculator) WindowFor(ref time.Time) Window {
	t := ref.In(c.loc)

	// time.Weekday has Sunday = 0; treat it as day 7 so Monday anchors the week.
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc).
		AddDate(0, 0, -(weekday - 1))
	end := monday.AddDate(0, 0, 7).Add(-time.Millisecond)

	return Window{Start: monday, End: end}
}

// ISOKeyFor returns the ISO-8601 week key ("{year}-W{week}") for ref.
func (c *Calculator) ISOKeyFor(ref time.Time) ISOKey {
	year, wk := ref.In(c.loc).ISOWeek()
	return ISOKey(fmt.Sprintf("%04d-W%02d", year, wk))
}

// MondayKeyFor returns the Monday-date week key for ref.
func (c *Calculator) MondayKeyFor(ref time.Time) MondayKey {
	return MondayKey(c.WindowFor(ref).Start.Format(dateLayout))
}

// DateKey returns the calendar-day key ("2006-01-02") for ref.
func (c *Calculator) DateKey(ref time.Time) string {
	return ref.In(c.loc).Format(dateLayout)
}

// WeeksBack returns the n week windows ending with the one containing ref,
// most recent first.
func (c *Calculator) WeeksBack(ref time.Time, n int) []Window {
	windows := make([]Window, 0, n)
	w := c.WindowFor(ref)
	for i := 0; i < n; i++ {
		windows = append(windows, w)
		w = c.WindowFor(w.Start.AddDate(0, 0, -1))
	}
	return windows
}

// DayKeys returns the seven date keys of the week starting at weekStart.
func (c *Calculator) DayKeys(weekStart time.Time) []string {
	keys := make([]string, 7)
	for i := 0; i < 7; i++ {
		keys[i] = weekStart.AddDate(0, 0, i).Format(dateLayout)
	}
	return keys
}
