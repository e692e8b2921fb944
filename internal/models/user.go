package models

// RiskLevel is the self-reported risk appetite from onboarding
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// User represents a platform user
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Aadhaar      string    `json:"aadhaar"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Not serialized
	RiskLevel    RiskLevel `json:"risk_level"`
	Language     string    `json:"language"`
	CreatedAt    string    `json:"created_at"`
}
