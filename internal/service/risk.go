package service

import (
	"context"
	"errors"

	"github.com/4rnv/safebalance/internal/models"
)

// ErrAccountNotFound is returned when a user has no virtual account
var ErrAccountNotFound = errors.New("account not found")

// riskInsightThreshold is the probability at or above which a risk
// prediction also emits an income-volatility insight
const riskInsightThreshold = 0.35

// PredictPaymentRisk fuses the current balance, the weekly expense buffer
// and the income forecast into a risk classification. Predictions at or
// above the insight threshold also emit a deduplicated advisory.
func (s *Service) PredictPaymentRisk(ctx context.Context, userID string) (*models.RiskResult, error) {
	account, err := s.store.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	weeklyExpenses, err := s.CalculateWeeklyBuffer(ctx, userID)
	if err != nil {
		return nil, err
	}

	forecast := s.forecaster.PredictWeeklyIncome(ctx, userID, nil)

	projectedPessimistic := account.Balance + forecast.Confidence5th - weeklyExpenses
	projectedMedian := account.Balance + forecast.Confidence50th - weeklyExpenses
	projectedOptimistic := account.Balance + forecast.Confidence95th - weeklyExpenses

	// First matching rule wins; probability grows with model uncertainty.
	uncertainty := forecast.Uncertainty
	var probability float64
	var tier models.RiskTier
	switch {
	case projectedPessimistic < 0:
		// Even pessimistic income won't cover expenses.
		probability = 0.85 + uncertainty*0.15
		tier = models.RiskCritical
	case projectedMedian < 0:
		probability = 0.60 + uncertainty*0.25
		tier = models.RiskHigh
	case projectedMedian < weeklyExpenses*0.5:
		probability = 0.35 + uncertainty*0.25
		tier = models.RiskMedium
	case projectedOptimistic < weeklyExpenses:
		probability = 0.15 + uncertainty*0.20
		tier = models.RiskLow
	default:
		probability = 0.05 + uncertainty*0.10
		tier = models.RiskMinimal
	}
	if probability > 0.99 {
		probability = 0.99
	}

	result := &models.RiskResult{
		UserID:         userID,
		CurrentBalance: account.Balance,
		WeeklyExpenses: weeklyExpenses,
		PredictedIncomeRange: models.IncomeRange{
			Pessimistic: forecast.Confidence5th,
			Median:      forecast.Confidence50th,
			Optimistic:  forecast.Confidence95th,
		},
		ProjectedBalanceRange: models.IncomeRange{
			Pessimistic: roundMoney(projectedPessimistic),
			Median:      roundMoney(projectedMedian),
			Optimistic:  roundMoney(projectedOptimistic),
		},
		RiskProbability:  roundMoney(probability),
		RiskLevel:        tier,
		ModelUncertainty: uncertainty,
		ModelAvailable:   forecast.ModelAvailable,
	}

	if result.RiskProbability >= riskInsightThreshold {
		if err := s.emitRiskInsight(ctx, result); err != nil {
			s.log.Errorf("Failed to emit risk insight for user %s: %v", userID, err)
		}
	}

	return result, nil
}
