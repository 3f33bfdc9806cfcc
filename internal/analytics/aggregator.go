package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	"github.com/luckyvista/feedbackpulse/internal/metrics"
)

const (
	// DefaultActivityLimit is used when the caller passes limit <= 0.
	DefaultActivityLimit = 10
	// MaxActivityLimit is the hard cap on recent-activity queries.
	// Requests above it are rejected, not clamped.
	MaxActivityLimit = 100

	// Snapshot defaults.
	snapshotTrendDays      = 30
	snapshotEngagementDays = 7
)

// Aggregator computes rollup views from the record store. It holds no
// mutable state; every query is a point-in-time reduction over whatever
// records are visible when it runs.
type Aggregator struct {
	repo  domain.FeedbackRepository
	clock clockwork.Clock
}

func NewAggregator(repo domain.FeedbackRepository, clock clockwork.Clock) *Aggregator {
	return &Aggregator{repo: repo, clock: clock}
}

func observe(view string, start time.Time) {
	metrics.AnalyticsQueryDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// Metrics returns the headline figures for the resolved scope.
func (a *Aggregator) Metrics(ctx context.Context, scope domain.Scope, tenant string) (*domain.MetricsSnapshot, error) {
	defer observe("metrics", a.clock.Now())

	filter, err := scope.Filter(tenant)
	if err != nil {
		return nil, err
	}
	records, err := a.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return reduceMetrics(records), nil
}

func reduceMetrics(records []domain.FeedbackRecord) *domain.MetricsSnapshot {
	snap := &domain.MetricsSnapshot{
		Sentiment: sentimentCounts(records),
		Ratings:   ratingCounts(records),
	}
	snap.TotalFeedback = len(records)

	users := make(map[uuid.UUID]struct{})
	ratingSum := 0
	for _, r := range records {
		users[r.UserID] = struct{}{}
		ratingSum += r.OverallRating
		switch group, _ := r.EmotionLabel.Group(); group {
		case domain.GroupPositive:
			snap.PositiveCount++
		case domain.GroupNegative:
			snap.NegativeCount++
		}
	}
	snap.TotalUsers = len(users)

	if len(records) > 0 {
		snap.AverageOverallRating = round2(float64(ratingSum) / float64(len(records)))
	}

	// Denominator floored at 1 so the ratio stays finite with zero
	// negative feedback.
	snap.PositiveNegativeRatio = float64(snap.PositiveCount) / float64(max(1, snap.NegativeCount))
	snap.MostCommonEmotion = mostCommon(snap.Sentiment)
	return snap
}

// SentimentDistribution counts records per emotion label. Labels with
// zero records are omitted; consumers treat absence as zero.
func (a *Aggregator) SentimentDistribution(ctx context.Context, scope domain.Scope, tenant string) (map[domain.EmotionLabel]int, error) {
	defer observe("sentiment", a.clock.Now())

	filter, err := scope.Filter(tenant)
	if err != nil {
		return nil, err
	}
	records, err := a.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return sentimentCounts(records), nil
}

// RatingBreakdown counts records per overall-rating value. Values with
// zero records are omitted.
func (a *Aggregator) RatingBreakdown(ctx context.Context, scope domain.Scope, tenant string) (map[int]int, error) {
	defer observe("ratings", a.clock.Now())

	filter, err := scope.Filter(tenant)
	if err != nil {
		return nil, err
	}
	records, err := a.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ratingCounts(records), nil
}

// Trends buckets submission counts over the range at the requested
// granularity. The returned series is contiguous: buckets with zero
// records are present with count 0, in ascending order.
func (a *Aggregator) Trends(ctx context.Context, scope domain.Scope, tenant string, rng domain.TimeRange, granularity domain.Granularity) ([]domain.TrendPoint, error) {
	defer observe("trends", a.clock.Now())

	filter, err := scope.Filter(tenant)
	if err != nil {
		return nil, err
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if !granularity.Valid() {
		return nil, domain.ErrInvalidRange
	}

	records, err := a.repo.ListRange(ctx, filter, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int)
	sums := make(map[time.Time]int)
	for _, r := range records {
		b := truncate(r.CreatedAt, granularity)
		counts[b]++
		sums[b] += r.OverallRating
	}

	var points []domain.TrendPoint
	for b := truncate(rng.From, granularity); b.Before(rng.To); b = next(b, granularity) {
		p := domain.TrendPoint{Bucket: b, Count: counts[b]}
		if p.Count > 0 {
			p.AverageRating = round2(float64(sums[b]) / float64(p.Count))
		}
		points = append(points, p)
	}
	return points, nil
}

// TenantComparison returns per-tenant summary rows, sorted by feedback
// count descending. Platform-level callers only.
func (a *Aggregator) TenantComparison(ctx context.Context, scope domain.Scope) ([]domain.TenantComparisonRow, error) {
	defer observe("comparison", a.clock.Now())

	if !scope.IsPlatform() {
		return nil, domain.ErrPermissionDenied
	}
	records, err := a.repo.List(ctx, domain.TenantFilter{})
	if err != nil {
		return nil, err
	}

	byTenant := make(map[string][]domain.FeedbackRecord)
	for _, r := range records {
		byTenant[r.Tenant] = append(byTenant[r.Tenant], r)
	}

	rows := make([]domain.TenantComparisonRow, 0, len(byTenant))
	for tenant, recs := range byTenant {
		row := domain.TenantComparisonRow{Tenant: tenant, FeedbackCount: len(recs)}
		users := make(map[uuid.UUID]struct{})
		ratingSum := 0
		for _, r := range recs {
			users[r.UserID] = struct{}{}
			ratingSum += r.OverallRating
			switch group, _ := r.EmotionLabel.Group(); group {
			case domain.GroupPositive:
				row.PositiveCount++
			case domain.GroupNegative:
				row.NegativeCount++
			}
			if r.EmotionLabel == domain.EmotionNeutral {
				row.NeutralCount++
			}
		}
		row.ActiveUsers = len(users)
		row.AverageRating = round2(float64(ratingSum) / float64(len(recs)))
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FeedbackCount != rows[j].FeedbackCount {
			return rows[i].FeedbackCount > rows[j].FeedbackCount
		}
		return rows[i].Tenant < rows[j].Tenant
	})
	return rows, nil
}

// Engagement normalizes submission volume by active users over a
// rolling window ending now.
func (a *Aggregator) Engagement(ctx context.Context, scope domain.Scope, tenant string, windowDays int) (*domain.EngagementMetrics, error) {
	defer observe("engagement", a.clock.Now())

	filter, err := scope.Filter(tenant)
	if err != nil {
		return nil, err
	}
	if windowDays <= 0 {
		return nil, domain.ErrInvalidRange
	}

	records, err := a.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	from := a.clock.Now().AddDate(0, 0, -windowDays)
	eng := &domain.EngagementMetrics{WindowDays: windowDays}
	users := make(map[uuid.UUID]struct{})
	for _, r := range records {
		if r.CreatedAt.Before(from) {
			continue
		}
		eng.Submissions++
		users[r.UserID] = struct{}{}
	}
	eng.ActiveUsers = len(users)
	if eng.ActiveUsers > 0 {
		eng.SubmissionsPerUser = round2(float64(eng.Submissions) / float64(eng.ActiveUsers))
	}
	return eng, nil
}

// RecentActivity returns the newest records. limit <= 0 means the
// default; a limit over the hard cap is rejected with ErrLimitExceeded.
func (a *Aggregator) RecentActivity(ctx context.Context, scope domain.Scope, tenant string, limit int) ([]domain.ActivityEntry, error) {
	defer observe("activity", a.clock.Now())

	filter, err := scope.Filter(tenant)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		return nil, domain.ErrLimitExceeded
	}

	records, err := a.repo.Recent(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = domain.ActivityEntry{
			ID:            r.ID,
			Tenant:        r.Tenant,
			UserID:        r.UserID,
			OverallRating: r.OverallRating,
			EmotionLabel:  r.EmotionLabel,
			CreatedAt:     r.CreatedAt,
		}
	}
	return entries, nil
}

// Snapshot assembles the full dashboard view: headline metrics, a
// 30-day daily trend, a 7-day engagement window and recent activity.
func (a *Aggregator) Snapshot(ctx context.Context, scope domain.Scope, tenant string) (*domain.TenantMetricsSnapshot, error) {
	defer observe("snapshot", a.clock.Now())

	m, err := a.Metrics(ctx, scope, tenant)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	rng := domain.TimeRange{From: now.AddDate(0, 0, -snapshotTrendDays), To: now.Add(time.Second)}
	trends, err := a.Trends(ctx, scope, tenant, rng, domain.GranularityDay)
	if err != nil {
		return nil, err
	}

	eng, err := a.Engagement(ctx, scope, tenant, snapshotEngagementDays)
	if err != nil {
		return nil, err
	}

	activity, err := a.RecentActivity(ctx, scope, tenant, DefaultActivityLimit)
	if err != nil {
		return nil, err
	}

	return &domain.TenantMetricsSnapshot{
		Metrics:        *m,
		Trends:         trends,
		Engagement:     *eng,
		RecentActivity: activity,
	}, nil
}

// --- reductions ---

func sentimentCounts(records []domain.FeedbackRecord) map[domain.EmotionLabel]int {
	counts := make(map[domain.EmotionLabel]int)
	for _, r := range records {
		counts[r.EmotionLabel]++
	}
	return counts
}

func ratingCounts(records []domain.FeedbackRecord) map[int]int {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.OverallRating]++
	}
	return counts
}

// mostCommon picks the label with the highest count, breaking ties
// lexicographically so the result is reproducible.
func mostCommon(counts map[domain.EmotionLabel]int) domain.EmotionLabel {
	var best domain.EmotionLabel
	bestCount := 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && count > 0 && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

// truncate aligns a timestamp to its bucket start in UTC. Weeks start
// on Monday.
func truncate(t time.Time, g domain.Granularity) time.Time {
	t = t.UTC()
	switch g {
	case domain.GranularityWeek:
		day := t.Truncate(24 * time.Hour)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t.Truncate(24 * time.Hour)
	}
}

func next(t time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityWeek:
		return t.AddDate(0, 0, 7)
	case domain.GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
