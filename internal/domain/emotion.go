package domain

// EmotionLabel is one of the thirteen emotion categories assigned to a
// feedback comment by the classifier, or the Unclassified sentinel for
// inputs the classifier could not confidently label.
type EmotionLabel string

const (
	EmotionLove       EmotionLabel = "Love"
	EmotionHappiness  EmotionLabel = "Happiness"
	EmotionFun        EmotionLabel = "Fun"
	EmotionEnthusiasm EmotionLabel = "Enthusiasm"
	EmotionRelief     EmotionLabel = "Relief"
	EmotionAnger      EmotionLabel = "Anger"
	EmotionHate       EmotionLabel = "Hate"
	EmotionSadness    EmotionLabel = "Sadness"
	EmotionWorry      EmotionLabel = "Worry"
	EmotionEmpty      EmotionLabel = "Empty"
	EmotionSurprise   EmotionLabel = "Surprise"
	EmotionBoredom    EmotionLabel = "Boredom"
	EmotionNeutral    EmotionLabel = "Neutral"

	// EmotionUnclassified marks feedback the classifier declined to label.
	// It is not a member of any sentiment group.
	EmotionUnclassified EmotionLabel = "Unclassified"
)

// EmotionGroup is a derived, fixed partition of the emotion labels used
// only for ratio and summary metrics, never for storage.
type EmotionGroup string

const (
	GroupPositive EmotionGroup = "positive"
	GroupNegative EmotionGroup = "negative"
	GroupConcern  EmotionGroup = "concern"
	GroupOther    EmotionGroup = "other"
)

// emotionGroups is the static lookup table from label to sentiment group.
// Unclassified is deliberately absent.
var emotionGroups = map[EmotionLabel]EmotionGroup{
	EmotionLove:       GroupPositive,
	EmotionHappiness:  GroupPositive,
	EmotionFun:        GroupPositive,
	EmotionEnthusiasm: GroupPositive,
	EmotionRelief:     GroupPositive,
	EmotionAnger:      GroupNegative,
	EmotionHate:       GroupNegative,
	EmotionSadness:    GroupConcern,
	EmotionWorry:      GroupConcern,
	EmotionEmpty:      GroupConcern,
	EmotionSurprise:   GroupOther,
	EmotionBoredom:    GroupOther,
	EmotionNeutral:    GroupOther,
}

// Group returns the sentiment group for the label. The second return is
// false for Unclassified and for unknown labels.
func (l EmotionLabel) Group() (EmotionGroup, bool) {
	g, ok := emotionGroups[l]
	return g, ok
}

// Valid reports whether the label is one of the thirteen emotion
// categories or the Unclassified sentinel.
func (l EmotionLabel) Valid() bool {
	if l == EmotionUnclassified {
		return true
	}
	_, ok := emotionGroups[l]
	return ok
}

// EmotionLabels returns the thirteen classifiable labels. The slice is a
// copy in lexicographic order, matching the classifier's class ordering.
func EmotionLabels() []EmotionLabel {
	return []EmotionLabel{
		EmotionAnger,
		EmotionBoredom,
		EmotionEmpty,
		EmotionEnthusiasm,
		EmotionFun,
		EmotionHappiness,
		EmotionHate,
		EmotionLove,
		EmotionNeutral,
		EmotionRelief,
		EmotionSadness,
		EmotionSurprise,
		EmotionWorry,
	}
}
