package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/4rnv/safebalance/internal/models"
)

// InsertInsightUnlessRecent appends an insight unless another of the same
// type exists for the user at or after the cutoff. The check and the insert
// run as one statement, so concurrent evaluations of the same user cannot
// both get through a dedup window; the bucket unique index in the schema
// backstops it. Returns true if the insight was inserted.
func (r *Repository) InsertInsightUnlessRecent(ctx context.Context, insight *models.Insight, cutoff time.Time) (bool, error) {
	return r.conditionalInsert(ctx, insight, cutoff, "")
}

// InsertReminderUnlessRecent appends a payment-due insight unless one
// referencing the same payment particulars exists for the user at or after
// the cutoff. Returns true if the insight was inserted.
func (r *Repository) InsertReminderUnlessRecent(ctx context.Context, insight *models.Insight, cutoff time.Time, particulars string) (bool, error) {
	return r.conditionalInsert(ctx, insight, cutoff, particulars)
}

func (r *Repository) conditionalInsert(ctx context.Context, insight *models.Insight, cutoff time.Time, particulars string) (bool, error) {
	if insight.ID == "" {
		insight.ID = uuid.NewString()
	}
	if insight.CreatedAt.IsZero() {
		insight.CreatedAt = time.Now().UTC()
	}

	metadata, err := marshalMetadata(insight.Metadata)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO insights (id, user_id, type, priority, title, message, action_suggestion, read, created_at, metadata)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM insights
			WHERE user_id = $2 AND type = $3 AND created_at >= $11`
	args := []interface{}{
		insight.ID, insight.UserID, insight.Type, insight.Priority, insight.Title,
		insight.Message, insight.ActionSuggestion, insight.Read, insight.CreatedAt,
		metadata, cutoff,
	}
	if particulars != "" {
		query += ` AND metadata->>'particulars' = $12`
		args = append(args, particulars)
	}
	query += `
		)
		ON CONFLICT DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert insight: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// ListInsightsByUser returns a user's latest insights, optionally unread only
func (r *Repository) ListInsightsByUser(ctx context.Context, userID string, unreadOnly bool, limit uint64) ([]models.Insight, error) {
	builder := sq.Select("id", "user_id", "type", "priority", "title", "message",
		"action_suggestion", "read", "created_at", "metadata").
		From("insights").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)
	if unreadOnly {
		builder = builder.Where(sq.Eq{"read": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insights query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	defer rows.Close()

	var insights []models.Insight
	for rows.Next() {
		var ins models.Insight
		var metadata []byte
		if err := rows.Scan(&ins.ID, &ins.UserID, &ins.Type, &ins.Priority, &ins.Title,
			&ins.Message, &ins.ActionSuggestion, &ins.Read, &ins.CreatedAt, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &ins.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode insight metadata: %w", err)
			}
		}
		insights = append(insights, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insights: %w", err)
	}
	return insights, nil
}

// MarkInsightRead flips the read flag. Returns false if the insight does not exist.
func (r *Repository) MarkInsightRead(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE insights SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark insight read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func marshalMetadata(metadata map[string]interface{}) (interface{}, error) {
	if metadata == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode insight metadata: %w", err)
	}
	return string(raw), nil
}
