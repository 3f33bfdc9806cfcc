package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/luckyvista/feedbackpulse/internal/analytics"
	"github.com/luckyvista/feedbackpulse/internal/config"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	"github.com/luckyvista/feedbackpulse/internal/emotion"
	"github.com/luckyvista/feedbackpulse/internal/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv   *Server
	repo  *feedback.MemoryRepository
	model *emotion.Service
	clock clockwork.FakeClock
	cfg   *config.Config
}

// newTestArtifact builds a two-class model with strong token separation
// so "love" maps to Love and "hate" to Hate with high confidence.
func newTestArtifact() *emotion.Artifact {
	return &emotion.Artifact{
		Version: "test-1",
		Vectorizer: emotion.VectorizerParams{
			Version:    "test-1",
			Vocabulary: map[string]int{"hate": 0, "love": 1},
			IDF:        []float64{1, 1},
		},
		Classifier: emotion.ClassifierParams{
			Version: "test-1",
			Alpha:   0.1,
			Classes: []string{"Hate", "Love"},
			ClassLogPrior: []float64{
				math.Log(0.5), math.Log(0.5),
			},
			FeatureLogProb: [][]float64{
				{math.Log(0.9), math.Log(0.1)},
				{math.Log(0.1), math.Log(0.9)},
			},
		},
	}
}

func writeTestArtifact(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(newTestArtifact())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppEnv:            "test",
		Port:              "8080",
		ModelArtifactPath: writeTestArtifact(t),
		SnapshotCacheTTL:  time.Minute,
	}

	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	repo := feedback.NewMemoryRepository()
	model := emotion.NewService(0)
	model.Load(newTestArtifact())

	feedbackSvc := feedback.NewService(repo, model, clock)
	aggregator := analytics.NewAggregator(repo, clock)
	snapshots := analytics.NewSnapshotCache(cfg.SnapshotCacheTTL, clock)

	srv := NewServer(cfg, feedbackSvc, aggregator, snapshots, model, nil, clock)
	return &testEnv{srv: srv, repo: repo, model: model, clock: clock, cfg: cfg}
}

func (env *testEnv) do(t *testing.T, method, path string, headers map[string]string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.srv.echo.ServeHTTP(rec, req)
	return rec
}

func tenantHeaders(tenant string, userID uuid.UUID) map[string]string {
	return map[string]string{
		headerTenantID: tenant,
		headerUserID:   userID.String(),
		headerRole:     string(domain.RoleTenantUser),
	}
}

func adminHeaders(userID uuid.UUID) map[string]string {
	return map[string]string{
		headerUserID: userID.String(),
		headerRole:   string(domain.RoleSuperAdmin),
	}
}

func (env *testEnv) seed(t *testing.T, tenant string, rating int, label domain.EmotionLabel) domain.FeedbackRecord {
	t.Helper()
	record := domain.FeedbackRecord{
		ID:                uuid.New(),
		Tenant:            tenant,
		UserID:            uuid.New(),
		OverallRating:     rating,
		ExperienceRating:  rating,
		Comments:          "seeded feedback for handler tests",
		EmotionLabel:      label,
		EmotionConfidence: 0.8,
		CreatedAt:         env.clock.Now().Add(-time.Hour),
	}
	require.NoError(t, env.repo.Insert(context.Background(), &record))
	return record
}

func TestSubmitFeedback(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	rec := env.do(t, http.MethodPost, "/api/feedback", tenantHeaders("acme", userID), `{
		"overall_rating": 5,
		"experience_rating": 4,
		"comments": "I absolutely love love love this product"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got domain.FeedbackRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "acme", got.Tenant)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, domain.EmotionLove, got.EmotionLabel)
	assert.Greater(t, got.EmotionConfidence, 0.35)
}

func TestSubmitFeedback_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/feedback", tenantHeaders("acme", uuid.New()), `{
		"overall_rating": 9,
		"experience_rating": 4,
		"comments": "short"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestSubmitFeedback_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/feedback", tenantHeaders("acme", uuid.New()), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentityRequired(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", nil},
		{"unknown role", map[string]string{headerRole: "root", headerUserID: uuid.NewString(), headerTenantID: "acme"}},
		{"tenant user without tenant", map[string]string{headerRole: string(domain.RoleTenantUser), headerUserID: uuid.NewString()}},
		{"bad user id", map[string]string{headerRole: string(domain.RoleTenantUser), headerUserID: "not-a-uuid", headerTenantID: "acme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/analytics/metrics", tt.headers, "")
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestListMyFeedback(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	submit := env.do(t, http.MethodPost, "/api/feedback", tenantHeaders("acme", userID), `{
		"overall_rating": 4,
		"experience_rating": 4,
		"comments": "a perfectly ordinary comment here"
	}`)
	require.Equal(t, http.StatusCreated, submit.Code)
	env.seed(t, "acme", 2, domain.EmotionHate)

	rec := env.do(t, http.MethodGet, "/api/feedback", tenantHeaders("acme", userID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Feedback []domain.FeedbackRecord `json:"feedback"`
		Count    int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Feedback, 1)
	assert.Equal(t, userID, resp.Feedback[0].UserID)
}

func TestAnalyticsMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 5, domain.EmotionLove)
	env.seed(t, "acme", 1, domain.EmotionHate)
	env.seed(t, "globex", 3, domain.EmotionNeutral)

	rec := env.do(t, http.MethodGet, "/api/analytics/metrics", tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.TotalFeedback)
	assert.Equal(t, 1, snap.PositiveCount)
	assert.Equal(t, 1, snap.NegativeCount)
	assert.Equal(t, 1.0, snap.PositiveNegativeRatio)
}

func TestAnalyticsMetrics_CrossTenantDenied(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "globex", 3, domain.EmotionNeutral)

	rec := env.do(t, http.MethodGet, "/api/analytics/metrics?tenant=globex", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalyticsMetrics_AdminSelectsTenant(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 5, domain.EmotionLove)
	env.seed(t, "globex", 3, domain.EmotionNeutral)

	rec := env.do(t, http.MethodGet, "/api/analytics/metrics?tenant=globex", adminHeaders(uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.TotalFeedback)
}

func TestAnalyticsTrends(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 4, domain.EmotionFun)

	rec := env.do(t, http.MethodGet,
		"/api/analytics/trends?from=2024-06-08T00:00:00Z&to=2024-06-15T00:00:00Z&granularity=day",
		tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Trends []domain.TrendPoint `json:"trends"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Trends, 7)
}

func TestAnalyticsTrends_DaysShortcut(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 4, domain.EmotionFun)

	rec := env.do(t, http.MethodGet, "/api/analytics/trends?days=7", tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Trends []domain.TrendPoint `json:"trends"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Trends, 8)
}

func TestAnalyticsTrends_BadParams(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/analytics/trends?from=yesterday&to=today",
		tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet,
		"/api/analytics/trends?from=2024-06-15T00:00:00Z&to=2024-06-08T00:00:00Z",
		tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet,
		"/api/analytics/trends?from=2024-06-08T00:00:00Z&to=2024-06-15T00:00:00Z&granularity=hour",
		tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantComparison(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 5, domain.EmotionLove)
	env.seed(t, "globex", 1, domain.EmotionHate)

	rec := env.do(t, http.MethodGet, "/api/analytics/comparison", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/analytics/comparison", adminHeaders(uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tenants []domain.TenantComparisonRow `json:"tenants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Tenants, 2)
}

func TestRecentActivity_LimitValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/analytics/activity?limit=500", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/analytics/activity?limit=abc", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/analytics/activity", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEngagement(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 4, domain.EmotionFun)

	rec := env.do(t, http.MethodGet, "/api/analytics/engagement?days=7", tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var eng domain.EngagementMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eng))
	assert.Equal(t, 7, eng.WindowDays)
	assert.Equal(t, 1, eng.Submissions)
}

func TestSnapshotUsesCache(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "acme", 5, domain.EmotionLove)

	first := env.do(t, http.MethodGet, "/api/analytics/snapshot", tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, first.Code)

	// New record lands after the snapshot was cached; within the TTL the
	// stale snapshot is served.
	env.seed(t, "acme", 1, domain.EmotionHate)

	second := env.do(t, http.MethodGet, "/api/analytics/snapshot", tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	env.clock.Advance(2 * time.Minute)

	third := env.do(t, http.MethodGet, "/api/analytics/snapshot", tenantHeaders("acme", uuid.New()), "")
	require.Equal(t, http.StatusOK, third.Code)
	assert.NotEqual(t, first.Body.String(), third.Body.String())
}

func TestSnapshot_CrossTenantDenied(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/analytics/snapshot?tenant=globex", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminReclassify(t *testing.T) {
	env := newTestEnv(t)
	pending := env.seed(t, "acme", 3, domain.EmotionUnclassified)

	rec := env.do(t, http.MethodPost, "/api/admin/reclassify", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/admin/reclassify", adminHeaders(uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Updated int `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Updated)

	records, err := env.repo.List(context.Background(), domain.TenantFilter{})
	require.NoError(t, err)
	for _, r := range records {
		if r.ID == pending.ID {
			assert.NotEqual(t, domain.EmotionUnclassified, r.EmotionLabel)
		}
	}
}

func TestAdminModelEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/model", tenantHeaders("acme", uuid.New()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/model", adminHeaders(uuid.New()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info emotion.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.True(t, info.Loaded)
	assert.Equal(t, "test-1", info.Version)

	rec = env.do(t, http.MethodPost, "/api/admin/model/reload", adminHeaders(uuid.New()), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminModelReload_BadArtifact(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.ModelArtifactPath = filepath.Join(t.TempDir(), "missing.json")

	rec := env.do(t, http.MethodPost, "/api/admin/model/reload", adminHeaders(uuid.New()), "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	// The previous model stays installed.
	assert.True(t, env.model.Loaded())
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = env.do(t, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"model_loaded":true`)
}
