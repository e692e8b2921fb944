package models

// Account is a user's virtual account. Balance is mutated by transaction
// processing; Buffer is owned by the agent engine and holds the expected
// total of obligations due within the next 7 days.
type Account struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Balance   float64 `json:"balance"`
	Buffer    float64 `json:"buffer"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
