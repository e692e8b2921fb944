package models

// ForecastResult is the weekly income distribution produced by the forecaster.
// Invariant: Confidence5th <= Confidence50th <= Confidence95th.
type ForecastResult struct {
	PredictedWeeklyTotal float64 `json:"predicted_weekly_total"`
	PredictedDailyAvg    float64 `json:"predicted_daily_avg"`
	Confidence5th        float64 `json:"confidence_5th"`
	Confidence50th       float64 `json:"confidence_50th"`
	Confidence95th       float64 `json:"confidence_95th"`
	Uncertainty          float64 `json:"uncertainty"`
	ModelAvailable       bool    `json:"model_available"`
	Error                string  `json:"error,omitempty"`
}

// RiskTier classifies payment-shortfall risk
type RiskTier string

const (
	RiskMinimal  RiskTier = "minimal"
	RiskLow      RiskTier = "low"
	RiskMedium   RiskTier = "medium"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// IncomeRange holds the three forecast scenarios
type IncomeRange struct {
	Pessimistic float64 `json:"pessimistic"`
	Median      float64 `json:"median"`
	Optimistic  float64 `json:"optimistic"`
}

// RiskResult fuses balance, buffer and income forecast into a risk call
type RiskResult struct {
	UserID                string      `json:"user_id"`
	CurrentBalance        float64     `json:"current_balance"`
	WeeklyExpenses        float64     `json:"weekly_expenses"`
	PredictedIncomeRange  IncomeRange `json:"predicted_income_range"`
	ProjectedBalanceRange IncomeRange `json:"projected_balance_range"`
	RiskProbability       float64     `json:"risk_probability"`
	RiskLevel             RiskTier    `json:"risk_level"`
	ModelUncertainty      float64     `json:"model_uncertainty"`
	ModelAvailable        bool        `json:"model_available"`
}
