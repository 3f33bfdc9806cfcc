package emotion

import (
	"math"

	"github.com/luckyvista/feedbackpulse/internal/domain"
)

// Classifier is a multinomial naive Bayes model over TF-IDF features.
// All parameters are frozen at training time, including the Laplace
// smoothing already baked into FeatureLogProb.
type Classifier struct {
	classes        []domain.EmotionLabel
	classLogPrior  []float64
	featureLogProb [][]float64
}

// NewClassifier builds a Classifier from frozen artifact parameters.
// Classes are required to be lexicographically sorted (enforced by
// Artifact.Validate), which makes the argmax tie-break deterministic.
func NewClassifier(params ClassifierParams) *Classifier {
	classes := make([]domain.EmotionLabel, len(params.Classes))
	for i, name := range params.Classes {
		classes[i] = domain.EmotionLabel(name)
	}
	return &Classifier{
		classes:        classes,
		classLogPrior:  params.ClassLogPrior,
		featureLogProb: params.FeatureLogProb,
	}
}

// Classes returns the model's label set in classifier order.
func (c *Classifier) Classes() []domain.EmotionLabel {
	out := make([]domain.EmotionLabel, len(c.classes))
	copy(out, c.classes)
	return out
}

// Classify returns the argmax class and its normalized posterior
// probability. Ties go to the lexicographically first label: classes
// are sorted and only a strictly greater score displaces the current
// best.
func (c *Classifier) Classify(v SparseVector) (domain.EmotionLabel, float64) {
	scores := make([]float64, len(c.classes))
	for i := range c.classes {
		score := c.classLogPrior[i]
		row := c.featureLogProb[i]
		for j, idx := range v.Indices {
			score += v.Values[j] * row[idx]
		}
		scores[i] = score
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	return c.classes[best], posterior(scores, best)
}

// posterior computes exp(scores[best]) / Σ exp(scores[i]) via
// log-sum-exp to stay finite for large negative log scores.
func posterior(scores []float64, best int) float64 {
	maxScore := scores[best]
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - maxScore)
	}
	return 1 / sum
}
