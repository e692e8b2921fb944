package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/4rnv/safebalance/internal/models"
)

// CreateAccount creates a virtual account for a user (one per user)
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	account.ID = uuid.NewString()
	query := `
		INSERT INTO accounts (id, user_id, balance, buffer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, account.ID, account.UserID, account.Balance, account.Buffer).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindAccountByUserID retrieves a user's virtual account, or nil if none exists
func (r *Repository) FindAccountByUserID(ctx context.Context, userID string) (*models.Account, error) {
	return r.findAccount(ctx, "user_id = $1", userID)
}

// FindAccountByID retrieves a virtual account by ID, or nil if none exists
func (r *Repository) FindAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return r.findAccount(ctx, "id = $1", id)
}

func (r *Repository) findAccount(ctx context.Context, where string, arg interface{}) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, user_id, balance, buffer, created_at, updated_at
		FROM accounts
		WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&account.ID, &account.UserID, &account.Balance, &account.Buffer,
			&account.CreatedAt, &account.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// IncrementBalance atomically adds delta (which may be negative) to an
// account's balance. Returns false if no matching account exists.
func (r *Repository) IncrementBalance(ctx context.Context, acctID string, delta float64) (bool, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, delta, acctID)
	if err != nil {
		return false, fmt.Errorf("failed to increment balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// SetBuffer atomically sets the buffer field on a user's account.
// Returns false if no matching account exists.
func (r *Repository) SetBuffer(ctx context.Context, userID string, buffer float64) (bool, error) {
	query := `
		UPDATE accounts
		SET buffer = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2`
	res, err := r.db.ExecContext(ctx, query, buffer, userID)
	if err != nil {
		return false, fmt.Errorf("failed to set buffer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
