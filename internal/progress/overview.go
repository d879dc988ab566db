package progress

import (
	"github.com/serenoapp/sereno/internal/model"
)

// MoodOverview summarizes a week's mood entries for the weekly report.
type MoodOverview struct {
	Count      int
	AvgValence float64
	AvgEnergy  float64
}

// HabitOverview summarizes a week's habit entries for the weekly report.
type HabitOverview struct {
	Count     int
	Histogram model.TagCountList
}

func SummarizeMoods(entries []*model.MoodEntry) MoodOverview {
	o := MoodOverview{Count: len(entries)}
	if len(entries) == 0 {
		return o
	}

	var valence, energy float64
	for _, e := range entries {
		valence += safeNumber(e.Valence)
		energy += safeNumber(e.Energy)
	}
	o.AvgValence = round2(valence / float64(len(entries)))
	o.AvgEnergy = round2(energy / float64(len(entries)))
	return o
}

func SummarizeHabits(entries []*model.HabitEntry) HabitOverview {
	counts := map[string]int{}
	for _, e := range entries {
		for _, raw := range e.Tags {
			if tag := normalizeTag(raw); tag != "" {
				counts[tag]++
			}
		}
	}
	return HabitOverview{
		Count:     len(entries),
		Histogram: sortedHistogram(counts),
	}
}
