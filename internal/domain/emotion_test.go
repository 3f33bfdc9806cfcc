package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmotionLabelsSortedAndComplete(t *testing.T) {
	labels := EmotionLabels()

	require.Len(t, labels, 13)
	assert.True(t, sort.SliceIsSorted(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	}))
	assert.NotContains(t, labels, EmotionUnclassified)

	for _, l := range labels {
		_, ok := l.Group()
		assert.True(t, ok, "label %s must belong to a group", l)
	}
}

func TestEmotionGroupAssignments(t *testing.T) {
	tests := []struct {
		label EmotionLabel
		group EmotionGroup
	}{
		{EmotionLove, GroupPositive},
		{EmotionHappiness, GroupPositive},
		{EmotionFun, GroupPositive},
		{EmotionEnthusiasm, GroupPositive},
		{EmotionRelief, GroupPositive},
		{EmotionAnger, GroupNegative},
		{EmotionHate, GroupNegative},
		{EmotionSadness, GroupConcern},
		{EmotionWorry, GroupConcern},
		{EmotionEmpty, GroupConcern},
		{EmotionSurprise, GroupOther},
		{EmotionBoredom, GroupOther},
		{EmotionNeutral, GroupOther},
	}
	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			group, ok := tt.label.Group()
			require.True(t, ok)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestEmotionUnclassifiedHasNoGroup(t *testing.T) {
	_, ok := EmotionUnclassified.Group()
	assert.False(t, ok)
	assert.True(t, EmotionUnclassified.Valid())
}

func TestEmotionLabelValid(t *testing.T) {
	assert.True(t, EmotionLove.Valid())
	assert.False(t, EmotionLabel("Joy").Valid())
	assert.False(t, EmotionLabel("").Valid())
}
