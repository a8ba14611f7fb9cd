package diary

import (
	"sort"

	"github.com/yeremiapane/restaurant-diary/models"
)

const (
	defaultDuration = 60
	durationStep    = 15
)

// Entry is a booking placed on the service timeline, in minutes.
type Entry struct {
	ID      string
	Start   int
	End     int
	Booking models.Booking

	ref tableRef
}

// Stack is a booking's position within its own overlap cluster.
type Stack struct {
	Index int `json:"index"`
	Total int `json:"total_overlapping"`
}

// roundedDuration rounds up to whole quarter hours; non-positive means unknown.
func roundedDuration(minutes int) int {
	if minutes <= 0 {
		return defaultDuration
	}
	steps := (minutes + durationStep - 1) / durationStep
	if steps < 1 {
		steps = 1
	}
	return steps * durationStep
}

// NewEntry places a booking on the timeline. A missing or unreadable arrival
// sorts as 00:00; an end before the arrival wraps into the next day.
func NewEntry(b models.Booking, dayStart int) Entry {
	start, ok := parseClock(b.ArrivalTime)
	if !ok {
		start = 0
	}

	duration := 0
	if end, ok := parseClock(b.EndTime); ok && end != start {
		if end < start {
			end += minutesPerDay
		}
		duration = end - start
	} else {
		duration = roundedDuration(b.DurationMinutes)
	}

	s := timeline(start, dayStart)
	return Entry{
		ID:      b.ID,
		Start:   s,
		End:     s + duration,
		Booking: b,
		ref:     refOf(b),
	}
}

// Overlaps treats touching intervals as overlapping so back-to-back bookings
// are drawn apart.
func Overlaps(a, b Entry) bool {
	return a.Start <= b.End && b.Start <= a.End
}

func sortEntries(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// StackOverlaps computes, per booking, the cluster made of itself and every
// booking overlapping it. Clusters are per booking, so two bookings that only
// share a neighbour can report different totals.
func StackOverlaps(entries []Entry) map[string]Stack {
	sorted := sortEntries(entries)
	stacks := make(map[string]Stack, len(sorted))
	for i, e := range sorted {
		st := Stack{}
		for j, o := range sorted {
			if i != j && !Overlaps(e, o) {
				continue
			}
			if i == j {
				st.Index = st.Total
			}
			st.Total++
		}
		stacks[e.ID] = st
	}
	return stacks
}
