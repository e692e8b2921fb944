package ml

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/archetype"
	"github.com/4rnv/safebalance/internal/models"
)

// ErrModelUnavailable marks forecasts served without a loaded model artifact.
var ErrModelUnavailable = errors.New("income model unavailable")

// InferenceError is a per-prediction failure inside model-mode inference,
// e.g. an archetype missing from the trained encoder (model/encoder version
// skew). It is caught by the forecaster and degrades to the fixed-default
// forecast, never propagating to callers.
type InferenceError struct {
	Detail string
	Err    error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inference failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("inference failed: %s", e.Detail)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// historyWindow is how far back deposit history feeds the forecaster.
const historyWindow = 30 * 24 * time.Hour

// Fixed-default forecast, used when no model and no history exist.
const (
	defaultWeeklyTotal = 3000
	defaultDailyAvg    = 428
	defaultLowerBound  = 2100
	defaultUpperBound  = 3900
	defaultUncertainty = 0.3
)

// AccountFinder resolves a user's virtual account.
type AccountFinder interface {
	FindAccountByUserID(ctx context.Context, userID string) (*models.Account, error)
}

// DepositReader lists deposit transactions since a cutoff, newest first.
type DepositReader interface {
	FindDeposits(ctx context.Context, acctID string, since time.Time) ([]models.Transaction, error)
}

// IncomeSourceReader returns the questionnaire answer describing the user's
// primary income source, or "" when no questionnaire exists.
type IncomeSourceReader interface {
	FindIncomeSource(ctx context.Context, userID string) (string, error)
}

// Forecaster predicts next-week income with ensemble quantile inference, or
// a history-mean heuristic when the model artifact is unavailable.
type Forecaster struct {
	artifact       *Artifact
	accounts       AccountFinder
	transactions   DepositReader
	questionnaires IncomeSourceReader
	log            *logrus.Logger
	now            func() time.Time
}

// NewForecaster wires a forecaster. A nil artifact puts the forecaster in
// fallback mode for the process lifetime.
func NewForecaster(artifact *Artifact, accounts AccountFinder, transactions DepositReader,
	questionnaires IncomeSourceReader, log *logrus.Logger) *Forecaster {
	return &Forecaster{
		artifact:       artifact,
		accounts:       accounts,
		transactions:   transactions,
		questionnaires: questionnaires,
		log:            log,
		now:            time.Now,
	}
}

// ModelAvailable reports whether the trained artifact was loaded.
func (f *Forecaster) ModelAvailable() bool {
	return f.artifact != nil
}

// PredictWeeklyIncome forecasts the user's next-week income. Recent deposit
// transactions may be supplied to avoid a store round trip; pass nil to have
// them fetched. Inference failures degrade to the fixed-default forecast with
// the error detail annotated.
func (f *Forecaster) PredictWeeklyIncome(ctx context.Context, userID string, txs []models.Transaction) models.ForecastResult {
	if f.artifact == nil {
		return f.fallback(ctx, userID)
	}

	result, err := f.infer(ctx, userID, txs)
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"event":   "inference_failed",
			"user_id": userID,
		}).Warnf("Income inference failed, using defaults: %v", err)
		return fixedDefaults(err.Error())
	}
	return result
}

// infer runs every tree in the ensemble over the feature vector and derives
// the weekly distribution from the per-tree daily-average predictions.
func (f *Forecaster) infer(ctx context.Context, userID string, txs []models.Transaction) (models.ForecastResult, error) {
	if txs == nil {
		var err error
		txs, err = f.recentDeposits(ctx, userID)
		if err != nil {
			return models.ForecastResult{}, &InferenceError{Detail: "fetch deposit history", Err: err}
		}
	}

	incomeSource, err := f.questionnaires.FindIncomeSource(ctx, userID)
	if err != nil {
		return models.ForecastResult{}, &InferenceError{Detail: "fetch questionnaire", Err: err}
	}
	arch := archetype.Classify(incomeSource)
	code, err := f.artifact.ArchetypeCode(arch)
	if err != nil {
		return models.ForecastResult{}, &InferenceError{Detail: "encode archetype", Err: err}
	}

	features := BuildFeatures(code, f.now().UTC(), amounts(txs))
	vec, err := Vector(features, f.artifact.FeatureColumns)
	if err != nil {
		return models.ForecastResult{}, &InferenceError{Detail: "order feature vector", Err: err}
	}

	treePreds := make([]float64, 0, len(f.artifact.Trees))
	for i, tree := range f.artifact.Trees {
		pred, err := tree.Predict(vec)
		if err != nil {
			return models.ForecastResult{}, &InferenceError{Detail: fmt.Sprintf("estimator %d", i), Err: err}
		}
		treePreds = append(treePreds, pred)
	}

	dailyAvg := mean(treePreds)
	return models.ForecastResult{
		PredictedWeeklyTotal: round2(dailyAvg * 7),
		PredictedDailyAvg:    round2(dailyAvg),
		Confidence5th:        round2(percentile(treePreds, 5) * 7),
		Confidence50th:       round2(percentile(treePreds, 50) * 7),
		Confidence95th:       round2(percentile(treePreds, 95) * 7),
		Uncertainty:          round3(stdPop(treePreds) / (mean(treePreds) + epsilon)),
		ModelAvailable:       true,
	}, nil
}

// fallback is the no-model heuristic: history mean when deposits exist in the
// last 30 days, fixed defaults otherwise.
func (f *Forecaster) fallback(ctx context.Context, userID string) models.ForecastResult {
	txs, err := f.recentDeposits(ctx, userID)
	if err != nil {
		f.log.WithField("user_id", userID).Warnf("Fallback forecast could not read history: %v", err)
		return fixedDefaults(ErrModelUnavailable.Error())
	}
	if len(txs) == 0 {
		return fixedDefaults("")
	}

	dailyAvg := mean(amounts(txs))
	weeklyTotal := dailyAvg * 7
	return models.ForecastResult{
		PredictedWeeklyTotal: round2(weeklyTotal),
		PredictedDailyAvg:    round2(dailyAvg),
		Confidence5th:        round2(weeklyTotal * 0.7),
		Confidence50th:       round2(weeklyTotal),
		Confidence95th:       round2(weeklyTotal * 1.3),
		Uncertainty:          defaultUncertainty,
		ModelAvailable:       false,
	}
}

// recentDeposits fetches the user's deposit history for the last 30 days,
// newest first. A missing account simply yields no history.
func (f *Forecaster) recentDeposits(ctx context.Context, userID string) ([]models.Transaction, error) {
	account, err := f.accounts.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return []models.Transaction{}, nil
	}
	since := f.now().UTC().Add(-historyWindow)
	txs, err := f.transactions.FindDeposits(ctx, account.ID, since)
	if err != nil {
		return nil, fmt.Errorf("find deposits: %w", err)
	}
	return txs, nil
}

func amounts(txs []models.Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount
	}
	return out
}

func fixedDefaults(detail string) models.ForecastResult {
	return models.ForecastResult{
		PredictedWeeklyTotal: defaultWeeklyTotal,
		PredictedDailyAvg:    defaultDailyAvg,
		Confidence5th:        defaultLowerBound,
		Confidence50th:       defaultWeeklyTotal,
		Confidence95th:       defaultUpperBound,
		Uncertainty:          defaultUncertainty,
		ModelAvailable:       false,
		Error:                detail,
	}
}
