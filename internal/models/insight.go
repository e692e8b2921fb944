package models

import "time"

// InsightType tags the condition an insight describes
type InsightType string

const (
	InsightLowBalanceWarning     InsightType = "low_balance_warning"
	InsightBufferBreach          InsightType = "buffer_breach"
	InsightPaymentDueSoon        InsightType = "payment_due_soon"
	InsightIncomeVolatilityAlert InsightType = "income_volatility_alert"
	InsightSavingsOpportunity    InsightType = "savings_opportunity"
)

// InsightPriority ranks insights for presentation
type InsightPriority string

const (
	PriorityLow      InsightPriority = "low"
	PriorityMedium   InsightPriority = "medium"
	PriorityHigh     InsightPriority = "high"
	PriorityCritical InsightPriority = "critical"
)

// Insight is an advisory record emitted by the agent engine. Insights are
// append-only; only the read flag is mutated afterwards, by the user.
type Insight struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"user_id"`
	Type             InsightType            `json:"type"`
	Priority         InsightPriority        `json:"priority"`
	Title            string                 `json:"title"`
	Message          string                 `json:"message"`
	ActionSuggestion string                 `json:"action_suggestion,omitempty"`
	Read             bool                   `json:"read"`
	CreatedAt        time.Time              `json:"created_at"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}
