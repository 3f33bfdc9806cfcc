package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field bounds enforced on feedback submissions. They mirror the check
// constraints on the feedback table.
const (
	RatingMin = 1
	RatingMax = 5

	RecommendationMin = 1
	RecommendationMax = 10

	CommentsMinLen = 10
	CommentsMaxLen = 5000
)

// FeedbackRecord is a single classified feedback submission. Records are
// immutable after creation; the only retroactive mutation is an explicit
// re-classification pass over Unclassified records.
type FeedbackRecord struct {
	ID                       uuid.UUID    `json:"id"`
	Tenant                   string       `json:"tenant"`
	UserID                   uuid.UUID    `json:"user_id"`
	OverallRating            int          `json:"overall_rating"`
	ExperienceRating         int          `json:"experience_rating"`
	Comments                 string       `json:"comments"`
	FeatureSatisfaction      *int         `json:"feature_satisfaction,omitempty"`
	UIRating                 *int         `json:"ui_rating,omitempty"`
	RecommendationLikelihood *int         `json:"recommendation_likelihood,omitempty"`
	AdditionalSuggestions    string       `json:"additional_suggestions,omitempty"`
	EmotionLabel             EmotionLabel `json:"emotion_label"`
	EmotionConfidence        float64      `json:"emotion_confidence"`
	CreatedAt                time.Time    `json:"created_at"`
}
