package ml

import (
	"math"
	"testing"
	"time"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestBuildFeaturesNoHistory(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) // a Monday
	features := BuildFeatures(2, now, nil)

	approx(t, "archetype_encoded", features["archetype_encoded"], 2)
	approx(t, "day_of_week", features["day_of_week"], 0)
	approx(t, "month", features["month"], 3)
	approx(t, "week_of_year", features["week_of_year"], 11)
	approx(t, "is_weekend", features["is_weekend"], 0)
	approx(t, "is_monsoon", features["is_monsoon"], 0)
	approx(t, "is_month_start", features["is_month_start"], 0)
	approx(t, "is_month_end", features["is_month_end"], 0)

	// Every derived statistic defaults to 0 with no history.
	for _, name := range []string{
		"income_lag_1", "income_lag_3", "income_lag_7",
		"income_rolling_mean_7", "income_rolling_std_7",
		"income_rolling_max_7", "income_rolling_min_7",
		"income_rolling_mean_14", "income_rolling_std_14",
		"income_cv_7", "zero_income_count_7",
	} {
		approx(t, name, features[name], 0)
	}
}

func TestBuildFeaturesCalendarFlags(t *testing.T) {
	t.Parallel()

	// A Sunday in July: weekend, monsoon, month start.
	now := time.Date(2025, time.July, 6, 8, 0, 0, 0, time.UTC)
	features := BuildFeatures(0, now, nil)

	approx(t, "day_of_week", features["day_of_week"], 6)
	approx(t, "is_weekend", features["is_weekend"], 1)
	approx(t, "is_monsoon", features["is_monsoon"], 1)
	approx(t, "is_month_start", features["is_month_start"], 1)
	approx(t, "is_month_end", features["is_month_end"], 0)
}

func TestBuildFeaturesShortHistory(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	features := BuildFeatures(0, now, []float64{100, 200, 300})

	approx(t, "income_lag_1", features["income_lag_1"], 100)
	approx(t, "income_lag_3", features["income_lag_3"], 300)
	// History shorter than 7: lag falls back to the most recent amount.
	approx(t, "income_lag_7", features["income_lag_7"], 100)

	approx(t, "income_rolling_mean_7", features["income_rolling_mean_7"], 200)
	wantStd := math.Sqrt(20000.0 / 3)
	approx(t, "income_rolling_std_7", features["income_rolling_std_7"], wantStd)
	approx(t, "income_rolling_max_7", features["income_rolling_max_7"], 300)
	approx(t, "income_rolling_min_7", features["income_rolling_min_7"], 100)
	approx(t, "income_rolling_mean_14", features["income_rolling_mean_14"], 200)
	approx(t, "income_cv_7", features["income_cv_7"], wantStd/(200+epsilon))
	approx(t, "zero_income_count_7", features["zero_income_count_7"], 0)
}

func TestBuildFeaturesSingleValueStdIsZero(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	features := BuildFeatures(0, now, []float64{500})

	approx(t, "income_rolling_std_7", features["income_rolling_std_7"], 0)
	approx(t, "income_rolling_std_14", features["income_rolling_std_14"], 0)
}

func TestBuildFeaturesZeroCount(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	features := BuildFeatures(0, now, []float64{0, 250, 0, 300, 0, 100, 50, 0})

	// Only the most recent 7 entries count; the trailing 0 is outside.
	approx(t, "zero_income_count_7", features["zero_income_count_7"], 3)
}

func TestVectorOrdering(t *testing.T) {
	t.Parallel()

	features := map[string]float64{"a": 1, "b": 2, "c": 3}
	vec, err := Vector(features, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("Vector returned error: %v", err)
	}
	want := []float64{3, 1, 2}
	for i := range want {
		if vec[i] != want[i] {
			t.Fatalf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestVectorColumnMismatch(t *testing.T) {
	t.Parallel()

	features := map[string]float64{"a": 1, "b": 2}
	if _, err := Vector(features, []string{"a", "missing"}); err == nil {
		t.Fatal("expected error for unknown column")
	}
	if _, err := Vector(features, []string{"a"}); err == nil {
		t.Fatal("expected error for column count mismatch")
	}
}
