package diary

import (
	"sort"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-diary/models"
)

const (
	GranularityHour    = 60
	GranularityQuarter = 15

	fallbackOpenHour  = 9
	fallbackCloseHour = 23
)

func normalizeGranularity(g int) int {
	if g == GranularityQuarter {
		return GranularityQuarter
	}
	return GranularityHour
}

// DefaultSlots is the fallback grid: 09:00 through 23:00, or 23:45 at quarter-hour granularity.
func DefaultSlots(granularity int) []string {
	g := normalizeGranularity(granularity)
	slots := make([]string, 0, (fallbackCloseHour-fallbackOpenHour+1)*60/g)
	for h := fallbackOpenHour; h <= fallbackCloseHour; h++ {
		for m := 0; m < 60; m += g {
			slots = append(slots, formatClock(h*60+m))
		}
	}
	return slots
}

func scheduleFor(hours []models.DaySchedule, day time.Weekday) (models.DaySchedule, bool) {
	name := day.String()
	for _, entry := range hours {
		if strings.EqualFold(strings.TrimSpace(entry.Day), name) {
			return entry, true
		}
	}
	return models.DaySchedule{}, false
}

// openWindow returns the parsed open/close minutes of an open, well-formed day.
func openWindow(hours []models.DaySchedule, day time.Weekday) (open, closing int, ok bool) {
	entry, found := scheduleFor(hours, day)
	if !found || entry.Closed {
		return 0, 0, false
	}
	open, okOpen := parseClock(entry.Open)
	closing, okClose := parseClock(entry.Close)
	if !okOpen || !okClose || open == closing {
		return 0, 0, false
	}
	return open, closing, true
}

// GenerateSlots builds the baseline time labels for a weekday from the business hours.
// Labels run from the opening time (floored to the granularity) through closing time.
// When closing is earlier than opening the service wraps past midnight.
func GenerateSlots(hours []models.DaySchedule, day time.Weekday, granularity int) []string {
	g := normalizeGranularity(granularity)
	open, closing, ok := openWindow(hours, day)
	if !ok {
		return DefaultSlots(g)
	}

	var slots []string
	start := open - open%g
	if closing > open {
		for m := start; m <= closing; m += g {
			slots = append(slots, formatClock(m))
		}
	} else {
		for m := start; m < minutesPerDay; m += g {
			slots = append(slots, formatClock(m))
		}
		for m := 0; m <= closing; m += g {
			slots = append(slots, formatClock(m))
		}
	}

	if len(slots) == 0 {
		return DefaultSlots(g)
	}
	return slots
}

// ServiceStart is the minute of day where the service timeline begins. It is
// zero unless the service runs past midnight; then it sits halfway through the
// closed gap, so early-morning times sort after midnight and afternoon times
// before opening sort ahead of it.
func ServiceStart(hours []models.DaySchedule, day time.Weekday) int {
	open, closing, ok := openWindow(hours, day)
	if !ok || closing > open {
		return 0
	}
	pivot := closing + (open-closing)/2
	if pivot < 1 {
		pivot = 1
	}
	return pivot
}

// ExtendSlots adds the slot covering every arrival the baseline misses and
// returns the labels in service order. An unreadable arrival counts as 00:00,
// where NewEntry places it.
func ExtendSlots(base []string, arrivals []string, granularity, dayStart int) []string {
	g := normalizeGranularity(granularity)
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base))
	for _, label := range base {
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	for _, arrival := range arrivals {
		m, ok := parseClock(arrival)
		if !ok {
			m = 0
		}
		label := formatClock(m - m%g)
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return slotKey(out[i], dayStart) < slotKey(out[j], dayStart)
	})
	return out
}

func slotKey(label string, dayStart int) int {
	m, ok := parseClock(label)
	if !ok {
		return 2 * minutesPerDay
	}
	return timeline(m, dayStart)
}

// Weekday parses an ISO calendar date.
func Weekday(date string) (time.Weekday, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Sunday, false
	}
	return t.Weekday(), true
}
