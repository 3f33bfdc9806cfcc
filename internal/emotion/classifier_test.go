package emotion

import (
	"testing"

	"github.com/luckyvista/feedbackpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, text string) (domain.EmotionLabel, float64) {
	t.Helper()
	a := newTestArtifact()
	v := NewVectorizer(a.Vectorizer)
	c := NewClassifier(a.Classifier)
	return c.Classify(v.Vectorize(text))
}

func TestClassify_DominantToken(t *testing.T) {
	tests := []struct {
		text string
		want domain.EmotionLabel
	}{
		{"love the platform", domain.EmotionLove},
		{"hate the platform", domain.EmotionHate},
		{"happy happy happy", domain.EmotionHappiness},
		{"worried", domain.EmotionWorry},
		{"so boring", domain.EmotionBoredom},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			label, confidence := classify(t, tt.text)
			assert.Equal(t, tt.want, label)
			assert.Greater(t, confidence, 0.9)
		})
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	for _, text := range []string{"love", "love hate", "the platform", "", "okay okay"} {
		_, confidence := classify(t, text)
		assert.GreaterOrEqual(t, confidence, 0.0, "text %q", text)
		assert.LessOrEqual(t, confidence, 1.0, "text %q", text)
	}
}

func TestClassify_TieBreaksLexicographically(t *testing.T) {
	// An all-zero vector scores every class at its prior; with uniform
	// priors all thirteen tie and the lexicographically first label wins.
	a := newTestArtifact()
	c := NewClassifier(a.Classifier)

	label, confidence := c.Classify(SparseVector{})

	assert.Equal(t, domain.EmotionAnger, label)
	assert.InDelta(t, 1.0/13.0, confidence, 1e-9)
}

func TestClassify_PosteriorSumsToOne(t *testing.T) {
	a := newTestArtifact()
	v := NewVectorizer(a.Vectorizer)
	c := NewClassifier(a.Classifier)

	vec := v.Vectorize("love the platform")
	_, top := c.Classify(vec)

	// The winning posterior is a proper probability.
	require.Greater(t, top, 0.0)
	require.LessOrEqual(t, top, 1.0)
}

func TestClassifier_ClassesCopied(t *testing.T) {
	c := NewClassifier(newTestArtifact().Classifier)

	classes := c.Classes()
	classes[0] = domain.EmotionNeutral

	assert.Equal(t, domain.EmotionAnger, c.Classes()[0])
}
