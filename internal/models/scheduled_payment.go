package models

// Occurrence is how often a scheduled payment recurs
type Occurrence string

const (
	OccurrenceWeekly  Occurrence = "weekly"
	OccurrenceMonthly Occurrence = "monthly"
	OccurrenceAnnual  Occurrence = "annual"
)

// Importance marks payments that warrant due-soon reminders
type Importance string

const (
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
)

// ScheduledPayment represents a recurring obligation (rent, EMI, school fees)
type ScheduledPayment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Amount      float64    `json:"amount"`
	Occurrence  Occurrence `json:"occurrence"`
	Particulars string     `json:"particulars"`
	Importance  Importance `json:"importance"`
	FirstDate   string     `json:"firstdate"` // Format: YYYY-MM-DD
	CreatedAt   string     `json:"created_at"`
}
