package emotion

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/luckyvista/feedbackpulse/internal/domain"
	"github.com/luckyvista/feedbackpulse/internal/metrics"
)

// DefaultConfidenceThreshold is the design default for the
// low-confidence fallback policy. Tunable via CONFIDENCE_THRESHOLD.
const DefaultConfidenceThreshold = 0.35

// model bundles a loaded artifact with the vectorizer and classifier
// built from it, so both halves always come from the same version.
type model struct {
	artifact   *Artifact
	vectorizer *Vectorizer
	classifier *Classifier
}

// Service orchestrates vectorize → classify and applies the fallback
// policy. The current model lives behind an atomic pointer: concurrent
// Classify calls never lock, and Reload installs a fully-loaded
// replacement without exposing partial state.
type Service struct {
	current   atomic.Pointer[model]
	threshold float64
}

// NewService creates a Service with no model loaded. Until Load or
// Reload succeeds, every classification degrades to Unclassified.
func NewService(threshold float64) *Service {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Service{threshold: threshold}
}

// Load installs an already-validated artifact.
func (s *Service) Load(a *Artifact) {
	s.current.Store(&model{
		artifact:   a,
		vectorizer: NewVectorizer(a.Vectorizer),
		classifier: NewClassifier(a.Classifier),
	})
}

// Reload loads an artifact from disk and atomically swaps it in.
// In-flight classifications keep the model they started with. On error
// the current model stays untouched.
func (s *Service) Reload(path string) error {
	a, err := LoadArtifact(path)
	if err != nil {
		metrics.ModelReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	s.Load(a)
	metrics.ModelReloadsTotal.WithLabelValues("ok").Inc()
	slog.Info("Model artifact loaded", "version", a.Version, "vocabulary_size", len(a.Vectorizer.Vocabulary), "classes", len(a.Classifier.Classes))
	return nil
}

// Loaded reports whether a model is currently installed.
func (s *Service) Loaded() bool {
	return s.current.Load() != nil
}

// Threshold returns the configured low-confidence cutoff.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// Classify implements domain.Classifier. It never fails: with no model
// loaded, or when the top posterior falls below the threshold, the
// result is (Unclassified, 0). A fallback is a recorded outcome, not an
// error, so it can never block a feedback write.
func (s *Service) Classify(text string) (domain.EmotionLabel, float64) {
	start := time.Now()
	defer func() {
		metrics.ClassificationDuration.Observe(time.Since(start).Seconds())
	}()

	m := s.current.Load()
	if m == nil {
		metrics.ClassificationFallbacksTotal.Inc()
		metrics.ClassificationsTotal.WithLabelValues(string(domain.EmotionUnclassified)).Inc()
		return domain.EmotionUnclassified, 0
	}

	label, confidence := m.classifier.Classify(m.vectorizer.Vectorize(text))
	if confidence < s.threshold {
		metrics.ClassificationFallbacksTotal.Inc()
		metrics.ClassificationsTotal.WithLabelValues(string(domain.EmotionUnclassified)).Inc()
		return domain.EmotionUnclassified, 0
	}

	metrics.ClassificationsTotal.WithLabelValues(string(label)).Inc()
	return label, confidence
}

// Info describes the currently loaded model for the admin surface.
type Info struct {
	Loaded         bool     `json:"loaded"`
	Version        string   `json:"version,omitempty"`
	VocabularySize int      `json:"vocabulary_size,omitempty"`
	Classes        []string `json:"classes,omitempty"`
	Threshold      float64  `json:"confidence_threshold"`
}

// ModelInfo returns metadata about the installed model.
func (s *Service) ModelInfo() Info {
	info := Info{Threshold: s.threshold}
	m := s.current.Load()
	if m == nil {
		return info
	}
	info.Loaded = true
	info.Version = m.artifact.Version
	info.VocabularySize = len(m.artifact.Vectorizer.Vocabulary)
	info.Classes = append([]string(nil), m.artifact.Classifier.Classes...)
	return info
}
