package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/4rnv/safebalance/internal/models"
)

// InsertTransaction stores a transaction record
func (r *Repository) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO transactions (id, acct_id, amount, type, details, merchant, source, datetime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.AccountID, tx.Amount, tx.Type, tx.Details, tx.Merchant, tx.Source, tx.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// FindDeposits lists deposit transactions for an account since a cutoff,
// newest first
func (r *Repository) FindDeposits(ctx context.Context, acctID string, since time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, acct_id, amount, type, details, merchant, source, datetime
		FROM transactions
		WHERE acct_id = $1 AND type = $2 AND datetime >= $3
		ORDER BY datetime DESC`
	rows, err := r.db.QueryContext(ctx, query, acctID, models.TransactionDeposit, since)
	if err != nil {
		return nil, fmt.Errorf("failed to find deposits: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListTransactionsByAccount pages through an account's transactions, newest first
func (r *Repository) ListTransactionsByAccount(ctx context.Context, acctID string, skip, limit uint64) ([]models.Transaction, error) {
	builder := sq.Select("id", "acct_id", "amount", "type", "details", "merchant", "source", "datetime").
		From("transactions").
		Where(sq.Eq{"acct_id": acctID}).
		OrderBy("datetime DESC").
		Offset(skip).
		Limit(limit).
		PlaceholderFormat(sq.Dollar)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transactions query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Amount, &tx.Type,
			&tx.Details, &tx.Merchant, &tx.Source, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}
