package ml

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/models"
)

type fakeStores struct {
	account      *models.Account
	deposits     []models.Transaction
	incomeSource string
}

func (s *fakeStores) FindAccountByUserID(ctx context.Context, userID string) (*models.Account, error) {
	return s.account, nil
}

func (s *fakeStores) FindDeposits(ctx context.Context, acctID string, since time.Time) ([]models.Transaction, error) {
	return s.deposits, nil
}

func (s *fakeStores) FindIncomeSource(ctx context.Context, userID string) (string, error) {
	return s.incomeSource, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestForecaster(artifact *Artifact, stores *fakeStores) *Forecaster {
	f := NewForecaster(artifact, stores, stores, stores, quietLogger())
	f.now = func() time.Time {
		return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return f
}

// stump builds a single-leaf tree predicting a constant daily average.
func stump(value float64) Tree {
	return Tree{{Feature: -2, Threshold: 0, Left: -1, Right: -1, Value: value}}
}

func testArtifact(trees ...Tree) *Artifact {
	classes := []string{
		"cab_driver", "food_delivery_rider", "freelancer", "part_time_laborer", "shop_assistant",
	}
	return &Artifact{Trees: trees, Classes: classes, FeatureColumns: FeatureNames()}
}

func TestFixedDefaultsNoModelNoHistory(t *testing.T) {
	t.Parallel()

	f := newTestForecaster(nil, &fakeStores{})
	result := f.PredictWeeklyIncome(context.Background(), "u1", nil)

	if result.PredictedWeeklyTotal != 3000 || result.PredictedDailyAvg != 428 {
		t.Fatalf("unexpected defaults: %+v", result)
	}
	if result.Confidence5th != 2100 || result.Confidence50th != 3000 || result.Confidence95th != 3900 {
		t.Fatalf("unexpected default bounds: %+v", result)
	}
	if result.Uncertainty != 0.3 || result.ModelAvailable {
		t.Fatalf("unexpected uncertainty/availability: %+v", result)
	}
}

func TestFallbackUsesHistoryMean(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{
		account: &models.Account{ID: "a1", UserID: "u1"},
		deposits: []models.Transaction{
			{Amount: 600}, {Amount: 800},
		},
	}
	f := newTestForecaster(nil, stores)
	result := f.PredictWeeklyIncome(context.Background(), "u1", nil)

	if result.PredictedDailyAvg != 700 {
		t.Fatalf("daily avg = %v, want 700", result.PredictedDailyAvg)
	}
	if result.PredictedWeeklyTotal != 4900 {
		t.Fatalf("weekly total = %v, want 4900", result.PredictedWeeklyTotal)
	}
	if result.Confidence5th != 3430 || result.Confidence50th != 4900 || result.Confidence95th != 6370 {
		t.Fatalf("unexpected bounds: %+v", result)
	}
	if result.Uncertainty != 0.3 || result.ModelAvailable {
		t.Fatalf("unexpected uncertainty/availability: %+v", result)
	}
}

func TestModelModeEnsembleQuantiles(t *testing.T) {
	t.Parallel()

	artifact := testArtifact(stump(100), stump(200), stump(300), stump(400), stump(500))
	stores := &fakeStores{
		account:      &models.Account{ID: "a1", UserID: "u1"},
		incomeSource: "zomato delivery",
	}
	f := newTestForecaster(artifact, stores)
	result := f.PredictWeeklyIncome(context.Background(), "u1", nil)

	if !result.ModelAvailable {
		t.Fatalf("expected model mode, got %+v", result)
	}
	if result.PredictedDailyAvg != 300 || result.PredictedWeeklyTotal != 2100 {
		t.Fatalf("unexpected point forecast: %+v", result)
	}
	// Linear-interpolated percentiles over [100..500] daily, times 7.
	if result.Confidence5th != 840 {
		t.Fatalf("5th = %v, want 840", result.Confidence5th)
	}
	if result.Confidence50th != 2100 {
		t.Fatalf("50th = %v, want 2100", result.Confidence50th)
	}
	if result.Confidence95th != 3360 {
		t.Fatalf("95th = %v, want 3360", result.Confidence95th)
	}
	if result.Uncertainty != 0.471 {
		t.Fatalf("uncertainty = %v, want 0.471", result.Uncertainty)
	}
}

func TestForecastBoundsOrderedInvariant(t *testing.T) {
	t.Parallel()

	results := []models.ForecastResult{
		newTestForecaster(nil, &fakeStores{}).PredictWeeklyIncome(context.Background(), "u1", nil),
		newTestForecaster(testArtifact(stump(50), stump(900), stump(10)),
			&fakeStores{account: &models.Account{ID: "a1"}}).PredictWeeklyIncome(context.Background(), "u1", nil),
	}
	for _, r := range results {
		if !(r.Confidence5th <= r.Confidence50th && r.Confidence50th <= r.Confidence95th) {
			t.Fatalf("bounds out of order: %+v", r)
		}
	}
}

func TestArchetypeEncoderSkewDegradesToDefaults(t *testing.T) {
	t.Parallel()

	artifact := testArtifact(stump(100))
	artifact.Classes = []string{"food_delivery_rider"} // skewed encoder
	stores := &fakeStores{
		account:      &models.Account{ID: "a1", UserID: "u1"},
		incomeSource: "uber driver",
	}
	f := newTestForecaster(artifact, stores)
	result := f.PredictWeeklyIncome(context.Background(), "u1", nil)

	if result.ModelAvailable {
		t.Fatal("skewed encoder must not produce a model-mode forecast")
	}
	if result.Error == "" {
		t.Fatal("encoder skew must surface as a distinguishable failure")
	}
	if result.PredictedWeeklyTotal != 3000 {
		t.Fatalf("expected fixed defaults, got %+v", result)
	}
}

func TestSuppliedTransactionsSkipFetch(t *testing.T) {
	t.Parallel()

	artifact := testArtifact(stump(250))
	// No account in store: supplied history must still be used.
	f := newTestForecaster(artifact, &fakeStores{incomeSource: "retail shop"})
	txs := []models.Transaction{{Amount: 100}, {Amount: 0}, {Amount: 50}}
	result := f.PredictWeeklyIncome(context.Background(), "u1", txs)

	if !result.ModelAvailable || result.PredictedDailyAvg != 250 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
