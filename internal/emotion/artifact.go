package emotion

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/luckyvista/feedbackpulse/internal/domain"
)

var (
	ErrVersionMismatch = errors.New("vectorizer and classifier artifact versions differ")
)

// Artifact is the versioned, immutable trained-model data: the TF-IDF
// vocabulary with its frozen IDF weights, and the naive Bayes
// parameters. Both halves carry the training-run version; mixing halves
// from different runs is rejected at load time.
type Artifact struct {
	Version    string           `json:"version"`
	Vectorizer VectorizerParams `json:"vectorizer"`
	Classifier ClassifierParams `json:"classifier"`
}

type VectorizerParams struct {
	Version    string         `json:"version"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

type ClassifierParams struct {
	Version        string      `json:"version"`
	Alpha          float64     `json:"alpha"`
	Classes        []string    `json:"classes"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// LoadArtifact reads and validates a model artifact from disk. Any
// inconsistency is an error: a process must not serve classification
// traffic from a half-valid model.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return &a, nil
}

// Validate checks internal consistency of the artifact.
func (a *Artifact) Validate() error {
	if a.Version == "" {
		return fmt.Errorf("artifact version is empty")
	}
	if a.Vectorizer.Version != a.Classifier.Version {
		return fmt.Errorf("%w: vectorizer %q vs classifier %q",
			ErrVersionMismatch, a.Vectorizer.Version, a.Classifier.Version)
	}

	vocabSize := len(a.Vectorizer.Vocabulary)
	if vocabSize == 0 {
		return fmt.Errorf("vocabulary is empty")
	}
	if len(a.Vectorizer.IDF) != vocabSize {
		return fmt.Errorf("idf length %d does not match vocabulary size %d",
			len(a.Vectorizer.IDF), vocabSize)
	}

	seen := make([]bool, vocabSize)
	for token, idx := range a.Vectorizer.Vocabulary {
		if idx < 0 || idx >= vocabSize {
			return fmt.Errorf("vocabulary index %d for token %q out of range", idx, token)
		}
		if seen[idx] {
			return fmt.Errorf("duplicate vocabulary index %d", idx)
		}
		seen[idx] = true
	}

	c := a.Classifier
	if len(c.Classes) == 0 {
		return fmt.Errorf("classifier has no classes")
	}
	if !sort.StringsAreSorted(c.Classes) {
		return fmt.Errorf("classifier classes must be sorted lexicographically")
	}
	for _, name := range c.Classes {
		label := domain.EmotionLabel(name)
		if !label.Valid() || label == domain.EmotionUnclassified {
			return fmt.Errorf("unknown emotion class %q", name)
		}
	}
	if len(c.ClassLogPrior) != len(c.Classes) {
		return fmt.Errorf("class_log_prior length %d does not match %d classes",
			len(c.ClassLogPrior), len(c.Classes))
	}
	if len(c.FeatureLogProb) != len(c.Classes) {
		return fmt.Errorf("feature_log_prob has %d rows, want %d",
			len(c.FeatureLogProb), len(c.Classes))
	}
	for i, row := range c.FeatureLogProb {
		if len(row) != vocabSize {
			return fmt.Errorf("feature_log_prob row %d has %d columns, want vocabulary size %d",
				i, len(row), vocabSize)
		}
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("smoothing constant alpha must be positive, got %g", c.Alpha)
	}
	return nil
}
