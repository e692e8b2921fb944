package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/4rnv/safebalance/internal/models"
)

// CreateQuestionnaire stores a user's onboarding questionnaire
func (r *Repository) CreateQuestionnaire(ctx context.Context, q *models.Questionnaire) error {
	q.ID = uuid.NewString()
	query := `
		INSERT INTO questionnaires (id, user_id, q1, a1, q2, a2, q3, a3, q4, a4, q5, a5)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.UserID, q.Q1, q.A1, q.Q2, q.A2, q.Q3, q.A3, q.Q4, q.A4, q.Q5, q.A5)
	if err != nil {
		return fmt.Errorf("failed to create questionnaire: %w", err)
	}
	return nil
}

// FindQuestionnaireByUser retrieves a user's questionnaire, or nil if none exists
func (r *Repository) FindQuestionnaireByUser(ctx context.Context, userID string) (*models.Questionnaire, error) {
	q := &models.Questionnaire{}
	query := `
		SELECT id, user_id, q1, a1, q2, a2, q3, a3, q4, a4, q5, a5
		FROM questionnaires
		WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&q.ID, &q.UserID, &q.Q1, &q.A1, &q.Q2, &q.A2, &q.Q3, &q.A3, &q.Q4, &q.A4, &q.Q5, &q.A5)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find questionnaire: %w", err)
	}
	return q, nil
}

// FindIncomeSource returns the answer to the primary-income-source question,
// or "" when the user has no questionnaire
func (r *Repository) FindIncomeSource(ctx context.Context, userID string) (string, error) {
	var answer string
	err := r.db.QueryRowContext(ctx, `SELECT a1 FROM questionnaires WHERE user_id = $1`, userID).
		Scan(&answer)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find income source: %w", err)
	}
	return answer, nil
}
