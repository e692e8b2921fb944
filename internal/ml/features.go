package ml

import (
	"fmt"
	"time"
)

// epsilon guards divisions by near-zero rolling means.
const epsilon = 1e-6

// maxHistory caps the deposit history fed into the feature builder.
const maxHistory = 30

// featureNames is the builder's output schema. The trained model's
// feature-column config must cover exactly this set.
var featureNames = []string{
	"archetype_encoded",
	"day_of_week",
	"month",
	"week_of_year",
	"is_weekend",
	"is_festival",
	"is_monsoon",
	"is_month_start",
	"is_month_end",
	"income_lag_1",
	"income_lag_3",
	"income_lag_7",
	"income_rolling_mean_7",
	"income_rolling_std_7",
	"income_rolling_max_7",
	"income_rolling_min_7",
	"income_rolling_mean_14",
	"income_rolling_std_14",
	"income_cv_7",
	"zero_income_count_7",
}

// FeatureNames returns the names the builder emits.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// BuildFeatures computes the forecasting feature set from the encoded
// archetype, the evaluation time and up to 30 deposit amounts ordered
// most-recent-first. With no history every derived statistic is 0.
func BuildFeatures(archetypeCode int, now time.Time, amounts []float64) map[string]float64 {
	if len(amounts) > maxHistory {
		amounts = amounts[:maxHistory]
	}

	var lag1, lag3, lag7 float64
	var mean7, std7, max7, min7 float64
	var mean14, std14 float64
	var cv7, zeroCount7 float64

	if len(amounts) > 0 {
		lag1 = amounts[0]
		lag3 = lag1
		if len(amounts) > 2 {
			lag3 = amounts[2]
		}
		lag7 = lag1
		if len(amounts) > 6 {
			lag7 = amounts[6]
		}

		recent7 := amounts
		if len(amounts) > 7 {
			recent7 = amounts[:7]
		}
		recent14 := amounts
		if len(amounts) > 14 {
			recent14 = amounts[:14]
		}

		mean7 = mean(recent7)
		if len(recent7) > 1 {
			std7 = stdPop(recent7)
		}
		max7 = maxOf(recent7)
		min7 = minOf(recent7)

		mean14 = mean(recent14)
		std14 = std7
		if len(recent14) > 1 {
			std14 = stdPop(recent14)
		}

		cv7 = std7 / (mean7 + epsilon)
		for _, a := range recent7 {
			if a == 0 {
				zeroCount7++
			}
		}
	}

	weekday := pythonWeekday(now)
	_, isoWeek := now.ISOWeek()

	return map[string]float64{
		"archetype_encoded":      float64(archetypeCode),
		"day_of_week":            float64(weekday),
		"month":                  float64(now.Month()),
		"week_of_year":           float64(isoWeek),
		"is_weekend":             boolFeature(weekday >= 5),
		"is_festival":            0, // no festival calendar ships with the engine
		"is_monsoon":             boolFeature(now.Month() >= time.June && now.Month() <= time.September),
		"is_month_start":         boolFeature(now.Day() <= 7),
		"is_month_end":           boolFeature(now.Day() >= 24),
		"income_lag_1":           lag1,
		"income_lag_3":           lag3,
		"income_lag_7":           lag7,
		"income_rolling_mean_7":  mean7,
		"income_rolling_std_7":   std7,
		"income_rolling_max_7":   max7,
		"income_rolling_min_7":   min7,
		"income_rolling_mean_14": mean14,
		"income_rolling_std_14":  std14,
		"income_cv_7":            cv7,
		"zero_income_count_7":    zeroCount7,
	}
}

// Vector reorders a feature set into the given column order. A column the
// builder did not produce is a contract violation.
func Vector(features map[string]float64, columns []string) ([]float64, error) {
	if len(columns) != len(features) {
		return nil, fmt.Errorf("feature count mismatch: model expects %d columns, built %d",
			len(columns), len(features))
	}
	vec := make([]float64, len(columns))
	for i, col := range columns {
		v, ok := features[col]
		if !ok {
			return nil, fmt.Errorf("feature column %q not produced by builder", col)
		}
		vec[i] = v
	}
	return vec, nil
}

// pythonWeekday maps time.Weekday (Sunday=0) to Monday=0..Sunday=6, the
// convention the model was trained with.
func pythonWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
