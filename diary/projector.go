package diary

import "math"

const (
	minWidthPercent  = 2.0
	minBookingHeight = 20.0
	rowInset         = 8.0
	topInset         = 4.0
	baseZIndex       = 10
)

// Placement is one booking rectangle in the diary grid.
type Placement struct {
	BookingID        string  `json:"booking_id"`
	TableID          string  `json:"table_id,omitempty"`
	Column           string  `json:"column"`
	Start            string  `json:"start"`
	End              string  `json:"end"`
	DurationMinutes  int     `json:"duration"`
	LeftPercent      float64 `json:"left_percent"`
	WidthPercent     float64 `json:"width_percent"`
	TopOffset        float64 `json:"top_offset"`
	Height           float64 `json:"height"`
	ZIndex           int     `json:"z_index"`
	Index            int     `json:"index"`
	TotalOverlapping int     `json:"total_overlapping"`
	Color            string  `json:"color"`
	BookingType      string  `json:"booking_type,omitempty"`
	Status           string  `json:"status,omitempty"`
	Tracking         string  `json:"tracking,omitempty"`
	Guests           int     `json:"guests"`
	CustomerName     string  `json:"customer_name,omitempty"`
	MultiTable       bool    `json:"multi_table,omitempty"`
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Project places a booking inside the hour column it starts in. The width
// covers the full duration, so long bookings overflow into later columns.
func Project(e Entry, st Stack, rowHeight int) Placement {
	startOfDay := e.Start % minutesPerDay
	duration := e.End - e.Start

	total := st.Total
	if total < 1 {
		total = 1
	}
	height := math.Max(minBookingHeight, (float64(rowHeight)-rowInset)/float64(total))

	return Placement{
		BookingID:        e.ID,
		Column:           formatClock(startOfDay - startOfDay%60),
		Start:            formatClock(e.Start),
		End:              formatClock(e.End),
		DurationMinutes:  duration,
		LeftPercent:      round4(float64(startOfDay%60) / 60 * 100),
		WidthPercent:     round4(math.Max(minWidthPercent, float64(duration)/60*100)),
		TopOffset:        round4(topInset + float64(st.Index)*height),
		Height:           round4(height),
		ZIndex:           baseZIndex - st.Index,
		Index:            st.Index,
		TotalOverlapping: total,
	}
}
