package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotOverlaps(t *testing.T) {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	slot := &TimeSlot{StartTime: base, EndTime: base.Add(time.Hour)}

	assert.True(t, slot.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.True(t, slot.Overlaps(base.Add(-30*time.Minute), base.Add(30*time.Minute)))
	assert.True(t, slot.Overlaps(base, base.Add(time.Hour)), "identical interval overlaps")
	assert.True(t, slot.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)), "containing interval overlaps")

	// Touching boundaries are back-to-back slots, not conflicts.
	assert.False(t, slot.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.False(t, slot.Overlaps(base.Add(-time.Hour), base))
}

func TestDayBounds(t *testing.T) {
	afternoon := time.Date(2025, 8, 1, 15, 42, 7, 0, time.UTC)
	start, end := DayBounds(afternoon)

	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.True(t, end.Before(time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)))
}
