package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/luckyvista/feedbackpulse/internal/domain"
)

// feedbackColumns must match the scan order in scanFeedback.
const feedbackColumns = `id, tenant, user_id, overall_rating, experience_rating, comments,
	feature_satisfaction, ui_rating, recommendation_likelihood, additional_suggestions,
	emotion_label, emotion_confidence, created_at`

// FeedbackRepo implements domain.FeedbackRepository backed by PostgreSQL.
type FeedbackRepo struct {
	pool *pgxpool.Pool
}

var _ domain.FeedbackRepository = (*FeedbackRepo)(nil)

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func scanFeedback(rows pgx.Rows) ([]domain.FeedbackRecord, error) {
	defer rows.Close()

	var out []domain.FeedbackRecord
	for rows.Next() {
		var r domain.FeedbackRecord
		err := rows.Scan(
			&r.ID, &r.Tenant, &r.UserID, &r.OverallRating, &r.ExperienceRating, &r.Comments,
			&r.FeatureSatisfaction, &r.UIRating, &r.RecommendationLikelihood, &r.AdditionalSuggestions,
			&r.EmotionLabel, &r.EmotionConfidence, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// tenantClause builds the WHERE fragment for a tenant filter. The
// returned args start at placeholder $1.
func tenantClause(filter domain.TenantFilter) (string, []any) {
	if filter.All() {
		return "TRUE", nil
	}
	return "tenant = $1", []any{filter.Tenant}
}

func (r *FeedbackRepo) Insert(ctx context.Context, record *domain.FeedbackRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO feedback (`+feedbackColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		record.ID, record.Tenant, record.UserID, record.OverallRating, record.ExperienceRating,
		record.Comments, record.FeatureSatisfaction, record.UIRating, record.RecommendationLikelihood,
		record.AdditionalSuggestions, record.EmotionLabel, record.EmotionConfidence, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepo) List(ctx context.Context, filter domain.TenantFilter) ([]domain.FeedbackRecord, error) {
	clause, args := tenantClause(filter)
	rows, err := r.pool.Query(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return scanFeedback(rows)
}

func (r *FeedbackRepo) ListRange(ctx context.Context, filter domain.TenantFilter, from, to time.Time) ([]domain.FeedbackRecord, error) {
	clause, args := tenantClause(filter)
	n := len(args)
	query := fmt.Sprintf(`SELECT `+feedbackColumns+` FROM feedback
		WHERE `+clause+` AND created_at >= $%d AND created_at < $%d`, n+1, n+2)
	args = append(args, from, to)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback range: %w", err)
	}
	return scanFeedback(rows)
}

func (r *FeedbackRepo) ListByUser(ctx context.Context, filter domain.TenantFilter, userID uuid.UUID) ([]domain.FeedbackRecord, error) {
	clause, args := tenantClause(filter)
	query := fmt.Sprintf(`SELECT `+feedbackColumns+` FROM feedback
		WHERE `+clause+` AND user_id = $%d
		ORDER BY created_at DESC, id DESC`, len(args)+1)
	args = append(args, userID)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback by user: %w", err)
	}
	return scanFeedback(rows)
}

func (r *FeedbackRepo) Recent(ctx context.Context, filter domain.TenantFilter, limit int) ([]domain.FeedbackRecord, error) {
	clause, args := tenantClause(filter)
	query := fmt.Sprintf(`SELECT `+feedbackColumns+` FROM feedback
		WHERE `+clause+`
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent feedback: %w", err)
	}
	return scanFeedback(rows)
}

func (r *FeedbackRepo) ListUnclassified(ctx context.Context, filter domain.TenantFilter) ([]domain.FeedbackRecord, error) {
	clause, args := tenantClause(filter)
	query := fmt.Sprintf(`SELECT `+feedbackColumns+` FROM feedback
		WHERE `+clause+` AND emotion_label = $%d`, len(args)+1)
	args = append(args, domain.EmotionUnclassified)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unclassified feedback: %w", err)
	}
	return scanFeedback(rows)
}

func (r *FeedbackRepo) UpdateClassification(ctx context.Context, id uuid.UUID, label domain.EmotionLabel, confidence float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE feedback
		SET emotion_label = $1, emotion_confidence = $2
		WHERE id = $3
	`, label, confidence, id)
	if err != nil {
		return fmt.Errorf("failed to update classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}
