package domain

import (
	"time"

	"github.com/google/uuid"
)

// Granularity is the bucket size for trend queries.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether the granularity is one of day, week or month.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// TimeRange is a half-open interval [From, To) over record creation
// times. Both bounds are required.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Validate rejects unbounded or inverted ranges.
func (r TimeRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrInvalidRange
	}
	if !r.From.Before(r.To) {
		return ErrInvalidRange
	}
	return nil
}

// MetricsSnapshot holds the headline rollup figures for a scope.
type MetricsSnapshot struct {
	TotalUsers            int                  `json:"total_users"`
	TotalFeedback         int                  `json:"total_feedback"`
	AverageOverallRating  float64              `json:"average_overall_rating"`
	PositiveCount         int                  `json:"positive_count"`
	NegativeCount         int                  `json:"negative_count"`
	PositiveNegativeRatio float64              `json:"positive_to_negative_ratio"`
	MostCommonEmotion     EmotionLabel         `json:"most_common_emotion,omitempty"`
	Sentiment             map[EmotionLabel]int `json:"sentiment_distribution"`
	Ratings               map[int]int          `json:"rating_breakdown"`
}

// TrendPoint is one bucket in a trend series. Buckets are contiguous:
// zero-count buckets are present with Count 0.
type TrendPoint struct {
	Bucket        time.Time `json:"bucket"`
	Count         int       `json:"count"`
	AverageRating float64   `json:"average_rating"`
}

// TenantComparisonRow is one tenant's summary in the platform-level
// cross-tenant comparison.
type TenantComparisonRow struct {
	Tenant        string  `json:"tenant"`
	FeedbackCount int     `json:"feedback_count"`
	AverageRating float64 `json:"average_rating"`
	ActiveUsers   int     `json:"active_users"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	NeutralCount  int     `json:"neutral_count"`
}

// EngagementMetrics normalizes submission volume by active users over a
// rolling window.
type EngagementMetrics struct {
	WindowDays         int     `json:"window_days"`
	ActiveUsers        int     `json:"active_users"`
	Submissions        int     `json:"submissions"`
	SubmissionsPerUser float64 `json:"submissions_per_user"`
}

// ActivityEntry is one row of the recent-activity list.
type ActivityEntry struct {
	ID            uuid.UUID    `json:"id"`
	Tenant        string       `json:"tenant"`
	UserID        uuid.UUID    `json:"user_id"`
	OverallRating int          `json:"overall_rating"`
	EmotionLabel  EmotionLabel `json:"emotion_label"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TenantMetricsSnapshot is the full dashboard view for one scope. It is
// recomputed on every query; any caching layered in front is an
// optimization, never a source of truth.
type TenantMetricsSnapshot struct {
	Metrics        MetricsSnapshot   `json:"metrics"`
	Trends         []TrendPoint      `json:"trends"`
	Engagement     EngagementMetrics `json:"engagement"`
	RecentActivity []ActivityEntry   `json:"recent_activity"`
}
