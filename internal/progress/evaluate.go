package progress

import (
	"math"

	"github.com/serenoapp/sereno/internal/model"
)

// Evaluation holds the snapshot fields produced for one goal and one week.
type Evaluation struct {
	ActualValue     float64
	TargetValue     float64
	Comparison      string
	Met             bool
	Delta           float64
	CoverageCount   int
	StreakAfterWeek int
	ProgressPercent float64
	Details         model.JSONMap
}

// Evaluate applies the goal's comparison to the aggregate and advances the
// streak counter from the previous week's snapshot. Pure and synchronous; the
// streak update reads only the immediately preceding snapshot, never full
// history.
func Evaluate(goal *model.Goal, agg Aggregate, prev *model.GoalSnapshot) Evaluation {
	actual := safeNumber(agg.ActualValue)
	target := safeNumber(goal.TargetValue)

	var met bool
	if goal.Comparison == model.ComparisonAtMost {
		met = actual <= target
	} else {
		met = actual >= target
	}

	streak := 0
	if met {
		streak = 1
		if prev != nil {
			streak = prev.StreakAfterWeek + 1
		}
	}

	return Evaluation{
		ActualValue:     round2(actual),
		TargetValue:     target,
		Comparison:      goal.Comparison,
		Met:             met,
		Delta:           round2(actual - target),
		CoverageCount:   agg.CoverageCount,
		StreakAfterWeek: streak,
		ProgressPercent: progressPercent(goal.Comparison, actual, target, met),
		Details:         agg.Details,
	}
}

func progressPercent(comparison string, actual, target float64, met bool) float64 {
	if target <= 0 {
		if met {
			return 100
		}
		return 0
	}

	var pct float64
	if comparison == model.ComparisonAtMost {
		if actual > target {
			return 0
		}
		pct = (target - actual) / target * 100
	} else {
		pct = actual / target * 100
	}

	return round1(clamp(pct, 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
