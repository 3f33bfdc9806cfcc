package emotion

import (
	"math"

	"github.com/luckyvista/feedbackpulse/internal/domain"
)

// testClasses are the thirteen labels in lexicographic order, as a
// trained artifact stores them.
var testClasses = []string{
	"Anger", "Boredom", "Empty", "Enthusiasm", "Fun", "Happiness",
	"Hate", "Love", "Neutral", "Relief", "Sadness", "Surprise", "Worry",
}

// testVocab maps one strongly indicative token to each class, plus a
// couple of filler tokens shared across classes.
var testVocab = map[string]int{
	"angry":    0,
	"boring":   1,
	"empty":    2,
	"excited":  3,
	"fun":      4,
	"happy":    5,
	"hate":     6,
	"love":     7,
	"okay":     8,
	"relieved": 9,
	"sad":      10,
	"wow":      11,
	"worried":  12,
	"the":      13,
	"platform": 14,
}

// newTestArtifact builds a small artifact with uniform priors and one
// dominant feature per class: token i is near-certain evidence for
// class i, everything else is strongly negative.
func newTestArtifact() *Artifact {
	vocabSize := len(testVocab)
	classes := make([]string, len(testClasses))
	copy(classes, testClasses)
	vocab := make(map[string]int, vocabSize)
	for k, v := range testVocab {
		vocab[k] = v
	}
	prior := math.Log(1.0 / float64(len(testClasses)))

	priors := make([]float64, len(testClasses))
	logProb := make([][]float64, len(testClasses))
	for i := range testClasses {
		priors[i] = prior
		row := make([]float64, vocabSize)
		for j := range row {
			row[j] = -10
		}
		row[i] = 0 // dominant token for this class
		row[13] = -1
		row[14] = -1
		logProb[i] = row
	}

	idf := make([]float64, vocabSize)
	for i := range idf {
		idf[i] = 1
	}

	return &Artifact{
		Version: "test-1",
		Vectorizer: VectorizerParams{
			Version:    "test-1",
			Vocabulary: vocab,
			IDF:        idf,
		},
		Classifier: ClassifierParams{
			Version:        "test-1",
			Alpha:          0.1,
			Classes:        classes,
			ClassLogPrior:  priors,
			FeatureLogProb: logProb,
		},
	}
}

func newTestService() *Service {
	svc := NewService(DefaultConfidenceThreshold)
	svc.Load(newTestArtifact())
	return svc
}

var _ domain.Classifier = (*Service)(nil)
