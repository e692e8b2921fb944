package service

import (
	"context"
	"errors"

	"github.com/4rnv/safebalance/internal/models"
)

// ErrInsufficientBalance is returned for withdrawals exceeding the balance
var ErrInsufficientBalance = errors.New("insufficient balance")

// CreateTransaction records a transaction, applies it to the account balance
// and runs the balance-risk check for the account owner
func (s *Service) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	account, err := s.store.FindAccountByID(ctx, tx.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	delta := tx.Amount
	if tx.Type == models.TransactionWithdrawal {
		if account.Balance < tx.Amount {
			return ErrInsufficientBalance
		}
		delta = -tx.Amount
	}

	if _, err := s.store.IncrementBalance(ctx, account.ID, delta); err != nil {
		return err
	}
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return err
	}

	s.log.Infof("Transaction recorded for account %s: %s %.2f", account.ID, tx.Type, tx.Amount)

	if err := s.CheckBalanceRisk(ctx, account.UserID); err != nil {
		s.log.Errorf("Balance-risk check failed for user %s: %v", account.UserID, err)
	}
	return nil
}

// ListTransactions pages through an account's transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, acctID string, skip, limit uint64) ([]models.Transaction, error) {
	if limit == 0 || limit > 50 {
		limit = 50
	}
	return s.store.ListTransactionsByAccount(ctx, acctID, skip, limit)
}

// PredictWeeklyIncome exposes the income forecast for a user
func (s *Service) PredictWeeklyIncome(ctx context.Context, userID string) models.ForecastResult {
	return s.forecaster.PredictWeeklyIncome(ctx, userID, nil)
}
