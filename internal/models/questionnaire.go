package models

// Questionnaire holds the five onboarding question/answer pairs.
// A1 answers "What is your primary source of income?" and feeds the
// archetype classifier.
type Questionnaire struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Q1     string `json:"q1"`
	A1     string `json:"a1"`
	Q2     string `json:"q2"`
	A2     string `json:"a2"`
	Q3     string `json:"q3"`
	A3     string `json:"a3"`
	Q4     string `json:"q4"`
	A4     string `json:"a4"`
	Q5     string `json:"q5"`
	A5     string `json:"a5"`
}
