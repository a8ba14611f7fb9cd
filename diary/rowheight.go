package diary

const (
	minRowHeight     = 40
	perBookingHeight = 20
	rowPadding       = 10
	tickMinutes      = 15
)

// MaxConcurrent samples every quarter hour of the given hour columns and
// returns the largest number of bookings active at once.
func MaxConcurrent(entries []Entry, hourSlots []string, dayStart int) int {
	peak := 0
	for _, label := range hourSlots {
		m, ok := parseClock(label)
		if !ok {
			continue
		}
		base := timeline(m-m%60, dayStart)
		for tick := base; tick < base+60; tick += tickMinutes {
			active := 0
			for _, e := range entries {
				if e.Start <= tick && tick < e.End {
					active++
				}
			}
			if active > peak {
				peak = active
			}
		}
	}
	return peak
}

// RowHeight is the pixel height of a table row holding maxOverlaps concurrent bookings.
func RowHeight(maxOverlaps int) int {
	h := maxOverlaps*perBookingHeight + rowPadding
	if h < minRowHeight {
		return minRowHeight
	}
	return h
}
