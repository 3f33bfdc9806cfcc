package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeRangeValidate(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, TimeRange{From: now.AddDate(0, 0, -7), To: now}.Validate())
	assert.ErrorIs(t, TimeRange{From: now, To: now}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, TimeRange{From: now, To: now.AddDate(0, 0, -1)}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, TimeRange{To: now}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, TimeRange{From: now}.Validate(), ErrInvalidRange)
}

func TestGranularityValid(t *testing.T) {
	assert.True(t, GranularityDay.Valid())
	assert.True(t, GranularityWeek.Valid())
	assert.True(t, GranularityMonth.Valid())
	assert.False(t, Granularity("hour").Valid())
	assert.False(t, Granularity("").Valid())
}
