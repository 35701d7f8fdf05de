package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/scheduling-api/internal/model"
)

func TestGroupBySegmentPartition(t *testing.T) {
	cal := weekdayCalendar()
	cal.WorkStart = 9 * 60
	cal.WorkEnd = 20 * 60
	cal.HasLunchBreak = false

	slots, err := ComputeSlots(cal, monday, 30, nil)
	require.NoError(t, err)

	groups := GroupBySegment(slots)
	require.Len(t, groups, 3)
	assert.Equal(t, model.SegmentMorning, groups[0].Segment)
	assert.Equal(t, model.SegmentAfternoon, groups[1].Segment)
	assert.Equal(t, model.SegmentEvening, groups[2].Segment)

	// Every slot lands in exactly one bucket, order preserved.
	total := 0
	for _, g := range groups {
		for _, s := range g.Slots {
			assert.Equal(t, g.Segment, s.Segment)
		}
		for i := 1; i < len(g.Slots); i++ {
			assert.Greater(t, g.Slots[i].StartMinute, g.Slots[i-1].StartMinute)
		}
		total += len(g.Slots)
	}
	assert.Equal(t, len(slots), total)

	// Boundary starts: 11:30 is morning, 12:00 afternoon, 17:30
	// afternoon, 18:00 evening.
	assert.Equal(t, model.SegmentMorning, slotAt(slots, 11*60+30).Segment)
	assert.Equal(t, model.SegmentAfternoon, slotAt(slots, 12*60).Segment)
	assert.Equal(t, model.SegmentAfternoon, slotAt(slots, 17*60+30).Segment)
	assert.Equal(t, model.SegmentEvening, slotAt(slots, 18*60).Segment)
}

func TestGroupBySegmentKeepsEmptyBuckets(t *testing.T) {
	cal := weekdayCalendar()

	// An 08:00-18:00 day never produces evening candidates; the bucket
	// is still present, just empty.
	slots, err := ComputeSlots(cal, monday, 30, nil)
	require.NoError(t, err)

	groups := GroupBySegment(slots)
	require.Len(t, groups, 3)
	assert.Empty(t, groups[2].Slots)
	assert.NotNil(t, groups[2].Slots)
}

func TestGroupBySegmentAllUnavailableBucketStillReturned(t *testing.T) {
	cal := weekdayCalendar()
	cal.HasLunchBreak = false

	// Afternoon fully booked: the bucket keeps its candidates, all
	// marked unavailable.
	bookings := []model.Booking{{Date: monday, StartMinute: 12 * 60, DurationMinutes: 6 * 60}}

	slots, err := ComputeSlots(cal, monday, 30, bookings)
	require.NoError(t, err)

	groups := GroupBySegment(slots)
	require.NotEmpty(t, groups[1].Slots)
	for _, s := range groups[1].Slots {
		assert.False(t, s.Available)
		assert.Equal(t, model.ReasonBookingConflict, s.Reason)
	}
	for _, s := range groups[0].Slots {
		assert.True(t, s.Available)
	}
}

func TestGroupBySegmentEmptyInput(t *testing.T) {
	groups := GroupBySegment(nil)
	require.Len(t, groups, 3)
	for _, g := range groups {
		assert.Empty(t, g.Slots)
	}
}
