package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/serenoapp/sereno/internal/model"
)

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("title is required")
	}

	if len(trimmed) > 100 {
		return errors.New("title is too long (max 100 characters)")
	}

	return nil
}

// ValidateGoal checks the category/metric/comparison combination and that
// filters match the goal's category. Emoji filters belong to mood goals,
// category filters to habit goals; anything else is rejected up front.
func ValidateGoal(category, metricType, comparison string, targetValue float64, filterEmojis, filterCategories []string) error {
	switch category {
	case model.GoalCategoryMood:
		if metricType != model.MetricAvgMood && metricType != model.MetricFrequency {
			return fmt.Errorf("invalid metric type %q for mood goal", metricType)
		}
		if len(filterCategories) > 0 {
			return errors.New("category filters are only valid for habit goals")
		}
	case model.GoalCategoryHabit:
		if metricType != model.MetricFrequency {
			return fmt.Errorf("invalid metric type %q for habit goal", metricType)
		}
		if len(filterEmojis) > 0 {
			return errors.New("emoji filters are only valid for mood goals")
		}
	case model.GoalCategoryCustom:
		if metricType != model.MetricFrequency {
			return fmt.Errorf("invalid metric type %q for custom goal", metricType)
		}
		if len(filterEmojis) > 0 || len(filterCategories) > 0 {
			return errors.New("custom goals do not take filters")
		}
	default:
		return fmt.Errorf("invalid goal category %q", category)
	}

	if comparison != model.ComparisonAtLeast && comparison != model.ComparisonAtMost {
		return fmt.Errorf("invalid comparison %q", comparison)
	}

	if math.IsNaN(targetValue) || math.IsInf(targetValue, 0) {
		return errors.New("target value must be a finite number")
	}

	return nil
}

// ValidateMoodValues rejects non-finite valence/energy at the API edge; the
// aggregator additionally treats anything malformed as zero.
func ValidateMoodValues(valence, energy float64) error {
	if math.IsNaN(valence) || math.IsInf(valence, 0) {
		return errors.New("valence must be a finite number")
	}
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return errors.New("energy must be a finite number")
	}
	return nil
}
