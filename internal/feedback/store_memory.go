package feedback

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/luckyvista/feedbackpulse/internal/domain"
)

// MemoryRepository is an in-memory FeedbackRepository for tests and
// single-node dev mode. Safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.FeedbackRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]domain.FeedbackRecord)}
}

func (m *MemoryRepository) Insert(_ context.Context, record *domain.FeedbackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = *record
	return nil
}

func (m *MemoryRepository) List(_ context.Context, filter domain.TenantFilter) ([]domain.FeedbackRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(r domain.FeedbackRecord) bool {
		return filter.Matches(r.Tenant)
	}), nil
}

func (m *MemoryRepository) ListRange(_ context.Context, filter domain.TenantFilter, from, to time.Time) ([]domain.FeedbackRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(r domain.FeedbackRecord) bool {
		return filter.Matches(r.Tenant) && !r.CreatedAt.Before(from) && r.CreatedAt.Before(to)
	}), nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, filter domain.TenantFilter, userID uuid.UUID) ([]domain.FeedbackRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.collect(func(r domain.FeedbackRecord) bool {
		return filter.Matches(r.Tenant) && r.UserID == userID
	})
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryRepository) Recent(_ context.Context, filter domain.TenantFilter, limit int) ([]domain.FeedbackRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.collect(func(r domain.FeedbackRecord) bool {
		return filter.Matches(r.Tenant)
	})
	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) ListUnclassified(_ context.Context, filter domain.TenantFilter) ([]domain.FeedbackRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(r domain.FeedbackRecord) bool {
		return filter.Matches(r.Tenant) && r.EmotionLabel == domain.EmotionUnclassified
	}), nil
}

func (m *MemoryRepository) UpdateClassification(_ context.Context, id uuid.UUID, label domain.EmotionLabel, confidence float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return domain.ErrFeedbackNotFound
	}
	record.EmotionLabel = label
	record.EmotionConfidence = confidence
	m.records[id] = record
	return nil
}

// collect copies matching records. Callers hold the lock.
func (m *MemoryRepository) collect(match func(domain.FeedbackRecord) bool) []domain.FeedbackRecord {
	var out []domain.FeedbackRecord
	for _, r := range m.records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortNewestFirst orders by CreatedAt descending, ties by ID
// descending, matching the record store's ordering contract.
func sortNewestFirst(records []domain.FeedbackRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID.String() > records[j].ID.String()
	})
}
