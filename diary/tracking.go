package diary

import "github.com/yeremiapane/restaurant-diary/models"

var trackingFlow = []string{
	models.TrackingNotArrived,
	models.TrackingArrived,
	models.TrackingSeated,
	models.TrackingAppetizers,
	models.TrackingStarters,
	models.TrackingMains,
	models.TrackingDesserts,
	models.TrackingBill,
	models.TrackingPaid,
	models.TrackingLeft,
}

// TrackingLabels lists every label, dining order first, then No Show.
func TrackingLabels() []string {
	out := make([]string, 0, len(trackingFlow)+1)
	out = append(out, trackingFlow...)
	return append(out, models.TrackingNoShow)
}

func ValidTracking(label string) bool {
	if label == models.TrackingNoShow {
		return true
	}
	for _, l := range trackingFlow {
		if l == label {
			return true
		}
	}
	return false
}

// NextTracking returns the label after current. Left and No Show are final.
// An empty label counts as Not Arrived.
func NextTracking(current string) (string, bool) {
	if current == "" {
		current = models.TrackingNotArrived
	}
	for i, l := range trackingFlow {
		if l == current && i+1 < len(trackingFlow) {
			return trackingFlow[i+1], true
		}
	}
	return current, false
}
