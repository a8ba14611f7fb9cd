package diary

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// parseClock reads "HH:MM" (seconds, if present, are ignored) into minutes after midnight.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// timeline maps a time of day onto the service timeline. On an overnight
// service (dayStart > 0) anything earlier than dayStart belongs after midnight.
func timeline(minutes, dayStart int) int {
	if dayStart > 0 && minutes < dayStart {
		return minutes + minutesPerDay
	}
	return minutes
}

// ValidClock reports whether s is a usable "HH:MM" time of day.
func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}
