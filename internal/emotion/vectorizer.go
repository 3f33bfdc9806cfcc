package emotion

import (
	"sort"
	"strings"
)

// SparseVector is a fixed-dimension sparse feature vector. Indices are
// strictly ascending; Values holds the weight at each index. The zero
// value is a valid (all-zero) vector.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Vectorizer maps raw text to a TF-IDF weighted sparse vector over the
// vocabulary learned at training time. The mapping is deterministic:
// identical text always yields a bit-identical vector for a fixed
// artifact version.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// NewVectorizer builds a Vectorizer from frozen artifact parameters.
func NewVectorizer(params VectorizerParams) *Vectorizer {
	return &Vectorizer{
		vocabulary: params.Vocabulary,
		idf:        params.IDF,
	}
}

// Vocabulary returns the fixed vector dimension.
func (v *Vectorizer) Vocabulary() int {
	return len(v.vocabulary)
}

// Vectorize converts text into term-frequency × inverse-document-frequency
// weights. Tokens absent from the training vocabulary are silently
// dropped; an all-zero vector is a valid, low-information result.
func (v *Vectorizer) Vectorize(text string) SparseVector {
	counts := make(map[int]int)
	for _, token := range tokenize(text) {
		if idx, ok := v.vocabulary[token]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = float64(counts[idx]) * v.idf[idx]
	}
	return SparseVector{Indices: indices, Values: values}
}

// tokenize lowercases the text, replaces every non-alphanumeric rune
// with a space and splits on whitespace.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
