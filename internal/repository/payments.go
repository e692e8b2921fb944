package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/4rnv/safebalance/internal/models"
)

// CreateScheduledPayment stores a recurring obligation
func (r *Repository) CreateScheduledPayment(ctx context.Context, payment *models.ScheduledPayment) error {
	payment.ID = uuid.NewString()
	query := `
		INSERT INTO scheduled_payments (id, user_id, amount, occurrence, particulars, importance, firstdate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		payment.ID, payment.UserID, payment.Amount, payment.Occurrence,
		payment.Particulars, payment.Importance, payment.FirstDate).
		Scan(&payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scheduled payment: %w", err)
	}
	return nil
}

// FindPaymentsByUser lists all of a user's scheduled payments
func (r *Repository) FindPaymentsByUser(ctx context.Context, userID string) ([]models.ScheduledPayment, error) {
	query := `
		SELECT id, user_id, amount, occurrence, particulars, importance, to_char(firstdate, 'YYYY-MM-DD'), created_at
		FROM scheduled_payments
		WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find scheduled payments: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

// FindHighImportancePayments lists a user's high-importance payments, for
// due-soon reminders
func (r *Repository) FindHighImportancePayments(ctx context.Context, userID string) ([]models.ScheduledPayment, error) {
	query := `
		SELECT id, user_id, amount, occurrence, particulars, importance, to_char(firstdate, 'YYYY-MM-DD'), created_at
		FROM scheduled_payments
		WHERE user_id = $1 AND importance = $2`
	rows, err := r.db.QueryContext(ctx, query, userID, models.ImportanceHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to find high-importance payments: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

// DeleteScheduledPayment removes an obligation. Returns false if it did not exist.
func (r *Repository) DeleteScheduledPayment(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scheduled_payments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete scheduled payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func scanPayments(rows *sql.Rows) ([]models.ScheduledPayment, error) {
	var payments []models.ScheduledPayment
	for rows.Next() {
		var p models.ScheduledPayment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &p.Occurrence,
			&p.Particulars, &p.Importance, &p.FirstDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scheduled payments: %w", err)
	}
	return payments, nil
}
