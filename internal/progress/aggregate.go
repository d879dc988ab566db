package progress

import (
	"math"
	"sort"
	"strings"

	"github.com/serenoapp/sereno/internal/model"
)

// Records holds the raw activity for one week, already filtered to the
// window by the caller. Only the slice matching the goal's category is read.
type Records struct {
	Moods      []*model.MoodEntry
	Habits     []*model.HabitEntry
	Activities []*model.ActivityLog
}

// Aggregate is the reduction of a week's raw records for one goal.
type Aggregate struct {
	ActualValue   float64
	CoverageCount int
	Details       model.JSONMap
}

// AggregateRecords reduces the candidate records into a single actual value
// plus a coverage count, per the goal's category and metric type. Empty or
// malformed input yields a zero aggregate, never an error.
func AggregateRecords(goal *model.Goal, recs Records) Aggregate {
	switch goal.Category {
	case model.GoalCategoryMood:
		return aggregateMood(goal, recs.Moods)
	case model.GoalCategoryHabit:
		return aggregateHabit(goal, recs.Habits)
	case model.GoalCategoryCustom:
		return aggregateCustom(recs.Activities)
	}
	return Aggregate{Details: model.JSONMap{}}
}

func aggregateMood(goal *model.Goal, entries []*model.MoodEntry) Aggregate {
	matched := make([]*model.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if matchesEmojis(e.Emojis, goal.FilterEmojis) {
			matched = append(matched, e)
		}
	}

	if goal.MetricType == model.MetricFrequency {
		return Aggregate{
			ActualValue:   float64(len(matched)),
			CoverageCount: len(matched),
			Details:       model.JSONMap{"entriesUsed": len(matched)},
		}
	}

	var sum float64
	for _, e := range matched {
		sum += safeNumber(e.Valence)
	}
	avg := 0.0
	if len(matched) > 0 {
		avg = sum / float64(len(matched))
	}

	return Aggregate{
		ActualValue:   avg,
		CoverageCount: len(matched),
		Details: model.JSONMap{
			"entriesUsed": len(matched),
			"valenceSum":  round2(sum),
		},
	}
}

func aggregateHabit(goal *model.Goal, entries []*model.HabitEntry) Aggregate {
	wanted := make(map[string]bool, len(goal.FilterCategories))
	for _, c := range goal.FilterCategories {
		if n := normalizeTag(c); n != "" {
			wanted[n] = true
		}
	}

	counts := map[string]int{}
	matched := 0
	for _, e := range entries {
		hit := false
		for _, raw := range e.Tags {
			tag := normalizeTag(raw)
			if tag == "" {
				continue
			}
			if len(wanted) == 0 || wanted[tag] {
				counts[tag]++
				hit = true
			}
		}
		if hit {
			matched++
		}
	}

	return Aggregate{
		ActualValue:   float64(matched),
		CoverageCount: matched,
		Details:       model.JSONMap{"histogram": sortedHistogram(counts)},
	}
}

func aggregateCustom(logs []*model.ActivityLog) Aggregate {
	var sum float64
	for _, l := range logs {
		v := safeNumber(l.Value)
		if v == 0 {
			v = 1
		}
		sum += v
	}

	return Aggregate{
		ActualValue:   sum,
		CoverageCount: len(logs),
		Details:       model.JSONMap{"logCount": len(logs)},
	}
}

// matchesEmojis reports whether the entry's emoji set intersects the filter.
// An empty filter excludes nothing.
func matchesEmojis(emojis, filter model.StringList) bool {
	if len(filter) == 0 {
		return true
	}
	set := make(map[string]bool, len(filter))
	for _, f := range filter {
		set[f] = true
	}
	for _, e := range emojis {
		if set[e] {
			return true
		}
	}
	return false
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// sortedHistogram orders buckets by count descending, ties by tag ascending
// so report output is deterministic.
func sortedHistogram(counts map[string]int) model.TagCountList {
	hist := make(model.TagCountList, 0, len(counts))
	for tag, n := range counts {
		hist = append(hist, model.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(hist, func(i, j int) bool {
		if hist[i].Count != hist[j].Count {
			return hist[i].Count > hist[j].Count
		}
		return hist[i].Tag < hist[j].Tag
	})
	return hist
}

// safeNumber collapses NaN and infinities to zero so a single malformed
// record can never poison an aggregate.
func safeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
