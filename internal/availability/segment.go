package availability

import "github.com/careloop/scheduling-api/internal/model"

// GroupBySegment splits an ordered slot sequence into the three display
// buckets. All three are always returned, in display order, so callers
// can distinguish a bucket with no candidates from one whose candidates
// are all taken. Each slot lands in exactly one bucket and relative
// order within a bucket is preserved.
func GroupBySegment(slots []model.Slot) []model.SegmentSlots {
	groups := make([]model.SegmentSlots, len(model.Segments))
	index := make(map[model.Segment]int, len(model.Segments))
	for i, seg := range model.Segments {
		groups[i] = model.SegmentSlots{Segment: seg, Slots: []model.Slot{}}
		index[seg] = i
	}
	for _, slot := range slots {
		i := index[slot.Segment]
		groups[i].Slots = append(groups[i].Slots, slot)
	}
	return groups
}

// hasAvailable is the day-level summary: a fold over the computed
// slots, never a re-enumeration.
func hasAvailable(slots []model.Slot) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}
