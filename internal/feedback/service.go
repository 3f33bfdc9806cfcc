package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	"github.com/luckyvista/feedbackpulse/internal/metrics"
)

// Submission carries the caller-supplied fields of a new feedback
// record. Bounds mirror the check constraints on the feedback table.
type Submission struct {
	OverallRating            int    `json:"overall_rating" validate:"required,min=1,max=5"`
	ExperienceRating         int    `json:"experience_rating" validate:"required,min=1,max=5"`
	Comments                 string `json:"comments" validate:"required,min=10,max=5000"`
	FeatureSatisfaction      *int   `json:"feature_satisfaction" validate:"omitempty,min=1,max=5"`
	UIRating                 *int   `json:"ui_rating" validate:"omitempty,min=1,max=5"`
	RecommendationLikelihood *int   `json:"recommendation_likelihood" validate:"omitempty,min=1,max=10"`
	AdditionalSuggestions    string `json:"additional_suggestions" validate:"omitempty,max=5000"`
}

// Service orchestrates the write path: validate, classify, persist.
type Service struct {
	repo       domain.FeedbackRepository
	classifier domain.Classifier
	clock      clockwork.Clock
	validate   *validator.Validate
}

func NewService(repo domain.FeedbackRepository, classifier domain.Classifier, clock clockwork.Clock) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
		clock:      clock,
		validate:   validator.New(),
	}
}

// Submit validates the submission, attaches an emotion label and
// persists the record. The label is set exactly once, here; analytics
// read paths never re-run classification.
func (s *Service) Submit(ctx context.Context, scope domain.Scope, userID uuid.UUID, sub Submission) (*domain.FeedbackRecord, error) {
	if scope.Tenant == "" {
		return nil, domain.ErrPermissionDenied
	}

	sub.Comments = strings.TrimSpace(sub.Comments)
	sub.AdditionalSuggestions = strings.TrimSpace(sub.AdditionalSuggestions)
	if err := s.validate.Struct(sub); err != nil {
		return nil, err
	}

	label, confidence := s.classifier.Classify(sub.Comments)

	record := &domain.FeedbackRecord{
		ID:                       uuid.New(),
		Tenant:                   scope.Tenant,
		UserID:                   userID,
		OverallRating:            sub.OverallRating,
		ExperienceRating:         sub.ExperienceRating,
		Comments:                 sub.Comments,
		FeatureSatisfaction:      sub.FeatureSatisfaction,
		UIRating:                 sub.UIRating,
		RecommendationLikelihood: sub.RecommendationLikelihood,
		AdditionalSuggestions:    sub.AdditionalSuggestions,
		EmotionLabel:             label,
		EmotionConfidence:        confidence,
		CreatedAt:                s.clock.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	metrics.FeedbackSubmissionsTotal.Inc()
	slog.Info("Feedback submitted", "feedback_id", record.ID, "tenant", record.Tenant, "emotion", record.EmotionLabel)
	return record, nil
}

// ListMine returns the caller's own submissions, newest first.
func (s *Service) ListMine(ctx context.Context, scope domain.Scope, userID uuid.UUID) ([]domain.FeedbackRecord, error) {
	filter, err := scope.Filter("")
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, filter, userID)
}

// Reclassify re-runs the classifier over Unclassified records. It is
// the only retroactive mutation of emotion labels and must be invoked
// explicitly by a platform-level caller, typically after a model
// reload. Returns the number of records that gained a label.
func (s *Service) Reclassify(ctx context.Context, scope domain.Scope) (int, error) {
	if !scope.IsPlatform() {
		return 0, domain.ErrPermissionDenied
	}

	records, err := s.repo.ListUnclassified(ctx, domain.TenantFilter{})
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, r := range records {
		label, confidence := s.classifier.Classify(r.Comments)
		if label == domain.EmotionUnclassified {
			continue
		}
		if err := s.repo.UpdateClassification(ctx, r.ID, label, confidence); err != nil {
			return updated, fmt.Errorf("failed to update classification for %s: %w", r.ID, err)
		}
		updated++
	}

	slog.Info("Re-classification pass finished", "candidates", len(records), "updated", updated)
	return updated, nil
}
