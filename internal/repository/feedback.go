package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/reviewqr/reviewqr/internal/model"
)

// ErrBusinessMissing indicates a feedback insert referenced a business
// that does not exist. Referential integrity lives in the store, not in
// the submission path.
var ErrBusinessMissing = errors.New("feedback references missing business")

// CreateFeedback inserts a new feedback row.
func (r *Repository) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	query := `
		INSERT INTO feedback (id, business_id, rating, feedback_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		feedback.ID,
		feedback.BusinessID,
		feedback.Rating,
		feedback.FeedbackText,
		feedback.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrBusinessMissing
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// ListFeedbackByBusiness retrieves all feedback for a business,
// newest first. An empty ratings slice means no rating filter.
func (r *Repository) ListFeedbackByBusiness(ctx context.Context, businessID string, ratings []int) ([]*model.Feedback, error) {
	query := `
		SELECT id, business_id, rating, feedback_text, created_at
		FROM feedback
		WHERE business_id = $1
	`
	args := []any{businessID}

	if len(ratings) > 0 {
		query += ` AND rating = ANY($2)`
		args = append(args, pq.Array(ratings))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []*model.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return feedback, nil
}

// scanFeedback scans a single row into a Feedback model.
func scanFeedback(row pgx.Row) (*model.Feedback, error) {
	var f model.Feedback
	err := row.Scan(
		&f.ID,
		&f.BusinessID,
		&f.Rating,
		&f.FeedbackText,
		&f.CreatedAt,
	)
	return &f, err
}
