package blocks

import "time"

// Contains reports whether now lies inside the window. Both bounds are
// inclusive and either may be open.
func (s *Schedule) Contains(now time.Time) bool {
	if s == nil {
		return true
	}
	if s.StartDate != nil && now.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && now.After(*s.EndDate) {
		return false
	}
	return true
}

// IsScheduleVisible reports whether b is visible at now. A zero now means the
// current time. Blocks without a schedule are always visible.
func IsScheduleVisible(b Block, now time.Time) bool {
	if now.IsZero() {
		now = time.Now()
	}
	return b.Schedule.Contains(now)
}

// VisibleAt filters list down to the blocks visible at now, keeping order.
func VisibleAt(list []Block, now time.Time) []Block {
	out := make([]Block, 0, len(list))
	for _, b := range list {
		if IsScheduleVisible(b, now) {
			out = append(out, b)
		}
	}
	return out
}
