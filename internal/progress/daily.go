package progress

import (
	"math"
	"time"

	"github.com/serenoapp/sereno/internal/model"
)

// Completion is the done/not-done summary for one Monday-anchored week.
type Completion struct {
	CompletedDays     int
	TotalDays         int
	CompletionRatio   float64
	CompletionPercent int
}

// WeeklyCompletion counts the distinct days in [weekStart, weekStart+6d] with
// a done check-in. Check-ins outside the window never count, even when done.
func WeeklyCompletion(checkins []*model.DailyCheckin, weekStart time.Time) Completion {
	inWeek := make(map[string]bool, 7)
	for i := 0; i < 7; i++ {
		inWeek[weekStart.AddDate(0, 0, i).Format("2006-01-02")] = true
	}

	seen := map[string]bool{}
	for _, c := range checkins {
		if c.Done && inWeek[c.DateKey] {
			seen[c.DateKey] = true
		}
	}

	ratio := float64(len(seen)) / 7
	return Completion{
		CompletedDays:     len(seen),
		TotalDays:         7,
		CompletionRatio:   ratio,
		CompletionPercent: int(math.Round(ratio * 100)),
	}
}

// StreakStats scans week results ordered most-recent-first. Current is the
// run of successes starting at index 0; best is the longest run anywhere in
// the window, so best >= current always holds.
func StreakStats(successes []bool) (current, best int) {
	for _, ok := range successes {
		if !ok {
			break
		}
		current++
	}

	run := 0
	for _, ok := range successes {
		if !ok {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return current, best
}
