package models

import "time"

// TransactionType tags the sign of a transaction amount
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// TransactionSource records how a transaction entered the system
type TransactionSource string

const (
	SourceUPI           TransactionSource = "UPI"
	SourceChat          TransactionSource = "chat"
	SourceBankStatement TransactionSource = "bank statement"
)

// Transaction represents a financial transaction on a virtual account
type Transaction struct {
	ID        string            `json:"id"`
	AccountID string            `json:"acct_id"`
	Amount    float64           `json:"amount"`
	Type      TransactionType   `json:"type"`
	Details   string            `json:"details,omitempty"`
	Merchant  string            `json:"merchant,omitempty"`
	Source    TransactionSource `json:"source"`
	Timestamp time.Time         `json:"datetime"`
}
