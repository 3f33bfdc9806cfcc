package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FeedbackRepository abstracts the feedback record store. Aggregations
// are pure reductions over the slices these methods return; the
// repository only filters, it never computes.
type FeedbackRepository interface {
	Insert(ctx context.Context, record *FeedbackRecord) error

	// List returns every record inside the tenant filter.
	List(ctx context.Context, filter TenantFilter) ([]FeedbackRecord, error)

	// ListRange returns records with CreatedAt in [from, to).
	ListRange(ctx context.Context, filter TenantFilter, from, to time.Time) ([]FeedbackRecord, error)

	// ListByUser returns one user's records, newest first.
	ListByUser(ctx context.Context, filter TenantFilter, userID uuid.UUID) ([]FeedbackRecord, error)

	// Recent returns the newest records, ordered by CreatedAt descending
	// with ties broken by ID descending.
	Recent(ctx context.Context, filter TenantFilter, limit int) ([]FeedbackRecord, error)

	// ListUnclassified returns records still carrying the Unclassified
	// sentinel, for the explicit re-classification pass.
	ListUnclassified(ctx context.Context, filter TenantFilter) ([]FeedbackRecord, error)

	// UpdateClassification stamps a new label and confidence on an
	// existing record. Only the re-classification pass calls this.
	UpdateClassification(ctx context.Context, id uuid.UUID, label EmotionLabel, confidence float64) error
}

// Classifier assigns an emotion label and a confidence in [0,1] to free
// text. Implementations never fail: inputs that cannot be confidently
// labeled come back as Unclassified with confidence 0.
type Classifier interface {
	Classify(text string) (EmotionLabel, float64)
}
