package diary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-diary/models"
)

const thursday = "2026-10-15"

func twoTables() []models.Table {
	return []models.Table{
		{ID: "T2", Name: "Table 2", Order: 1, Active: true, Capacity: 4},
		{ID: "T1", Name: "Table 1", Order: 0, Active: true, Capacity: 2},
	}
}

func rowByID(t *testing.T, l *Layout, id string) Row {
	t.Helper()
	for _, r := range l.Rows {
		if r.TableID == id {
			return r
		}
	}
	t.Fatalf("row %q not found", id)
	return Row{}
}

func TestBuildSingleBooking(t *testing.T) {
	layout := Build(Snapshot{
		Date:   thursday,
		Tables: twoTables(),
		Bookings: []models.Booking{
			{ID: "b1", Date: thursday, ArrivalTime: "18:00", EndTime: "19:00", TableID: "T1", Guests: 4},
		},
	})

	require.Len(t, layout.Rows, 2)
	assert.Equal(t, "T1", layout.Rows[0].TableID)
	assert.Equal(t, "T2", layout.Rows[1].TableID)
	assert.Equal(t, DefaultSlots(60), layout.Slots)

	t1 := rowByID(t, layout, "T1")
	assert.Equal(t, 40, t1.Height)
	require.Len(t, t1.Bookings, 1)
	p := t1.Bookings[0]
	assert.Equal(t, "18:00", p.Column)
	assert.Equal(t, 0.0, p.LeftPercent)
	assert.Equal(t, 100.0, p.WidthPercent)
	assert.Equal(t, "T1", p.TableID)
	assert.Equal(t, models.DefaultColor, p.Color)

	assert.Equal(t, 40, layout.HeaderHeight)
	assert.Equal(t, 1, layout.Summary.Bookings)
	assert.Equal(t, 4, layout.Summary.Covers)
	assert.Equal(t, 0, layout.Summary.Unassigned)
}

func TestBuildOverlappingBookings(t *testing.T) {
	layout := Build(Snapshot{
		Date:   thursday,
		Tables: twoTables(),
		Bookings: []models.Booking{
			{ID: "B", ArrivalTime: "18:30", EndTime: "19:30", TableID: "T1", Guests: 2},
			{ID: "A", ArrivalTime: "18:00", EndTime: "19:00", TableID: "T1", Guests: 2},
		},
	})

	t1 := rowByID(t, layout, "T1")
	assert.Equal(t, 50, t1.Height)
	require.Len(t, t1.Bookings, 2)
	assert.Equal(t, "A", t1.Bookings[0].BookingID)
	assert.Equal(t, 0, t1.Bookings[0].Index)
	assert.Equal(t, 2, t1.Bookings[0].TotalOverlapping)
	assert.Equal(t, "B", t1.Bookings[1].BookingID)
	assert.Equal(t, 1, t1.Bookings[1].Index)
	assert.Equal(t, 2, t1.Bookings[1].TotalOverlapping)
	assert.Equal(t, 50, layout.HeaderHeight)
}

func TestBuildMultiTableAndUnassigned(t *testing.T) {
	multi := models.Booking{ID: "m", ArrivalTime: "19:00", Guests: 8}
	multi.SetTables([]string{"T1", "T2"})

	layout := Build(Snapshot{
		Date:   thursday,
		Tables: twoTables(),
		Bookings: []models.Booking{
			multi,
			{ID: "lost", ArrivalTime: "20:00", TableNumber: "99", Guests: 2},
		},
	})

	require.Len(t, layout.Rows, 3)
	for _, id := range []string{"T1", "T2"} {
		row := rowByID(t, layout, id)
		require.Len(t, row.Bookings, 1)
		assert.True(t, row.Bookings[0].MultiTable)
	}

	last := layout.Rows[2]
	assert.Equal(t, UnassignedName, last.TableName)
	assert.Empty(t, last.TableID)
	require.Len(t, last.Bookings, 1)
	assert.Equal(t, "lost", last.Bookings[0].BookingID)

	assert.Equal(t, 2, layout.Summary.Bookings)
	assert.Equal(t, 10, layout.Summary.Covers)
	assert.Equal(t, 1, layout.Summary.Unassigned)
}

func TestBuildInactiveTables(t *testing.T) {
	tables := append(twoTables(), models.Table{ID: "T3", Name: "Old", Order: 2, Active: false})

	layout := Build(Snapshot{Date: thursday, Tables: tables})
	assert.Len(t, layout.Rows, 2)

	layout = Build(Snapshot{
		Date:     thursday,
		Tables:   tables,
		Bookings: []models.Booking{{ID: "x", ArrivalTime: "12:00", TableID: "T3"}},
	})
	assert.Len(t, layout.Rows, 3)
	assert.False(t, rowByID(t, layout, "T3").Active)
}

func TestBuildExtendsSlotsForEarlyBookings(t *testing.T) {
	layout := Build(Snapshot{
		Date:     thursday,
		Tables:   twoTables(),
		Bookings: []models.Booking{{ID: "early", ArrivalTime: "07:45", TableID: "T2"}},
	})

	assert.Equal(t, "07:00", layout.Slots[0])
	p := rowByID(t, layout, "T2").Bookings[0]
	assert.Equal(t, "07:00", p.Column)
	assert.Equal(t, 75.0, p.LeftPercent)
}

func TestBuildPlacesEveryBookingInAGridColumn(t *testing.T) {
	hours := []models.DaySchedule{{Day: "Friday", Open: "18:00", Close: "02:00"}}
	cases := []struct {
		name     string
		date     string
		settings models.BookingSettings
		arrivals []string
	}{
		{"unreadable arrival", thursday, models.BookingSettings{}, []string{"7pm", "19:00"}},
		{"missing arrival", thursday, models.BookingSettings{}, []string{"", "12:30"}},
		{"outside default hours", thursday, models.BookingSettings{}, []string{"06:45", "23:59"}},
		{"overnight service", "2026-10-16", models.BookingSettings{BusinessHours: hours}, []string{"17:10", "01:30", "soon"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var bookings []models.Booking
			for i, a := range tc.arrivals {
				bookings = append(bookings, models.Booking{
					ID: string(rune('a' + i)), Date: tc.date, ArrivalTime: a, TableID: "T1", Guests: 2,
				})
			}
			layout := Build(Snapshot{Date: tc.date, Tables: twoTables(), Bookings: bookings, Settings: tc.settings})

			placed := 0
			for _, row := range layout.Rows {
				for _, p := range row.Bookings {
					assert.Contains(t, layout.Slots, p.Column, "booking %s starts in a missing column", p.BookingID)
					placed++
				}
			}
			assert.Equal(t, len(tc.arrivals), placed)
		})
	}
}

func TestBuildCanonicalCatalogs(t *testing.T) {
	layout := Build(Snapshot{
		Date:   thursday,
		Tables: twoTables(),
		Types: []models.BookingType{
			{ID: "bt1", Name: "Dinner", Color: "#F00", DefaultDuration: 90},
		},
		Statuses: []models.BookingStatus{
			{ID: "st1", Name: "Confirmed", Color: "#2196f3"},
		},
		Bookings: []models.Booking{
			{ID: "a", ArrivalTime: "18:00", TableID: "T1", BookingType: "dinner", Status: "Confirmed"},
			{ID: "b", ArrivalTime: "21:00", TableID: "T1", Status: "st1"},
		},
	})

	row := rowByID(t, layout, "T1")
	require.Len(t, row.Bookings, 2)
	assert.Equal(t, "bt1", row.Bookings[0].BookingType)
	assert.Equal(t, "st1", row.Bookings[0].Status)
	assert.Equal(t, "#ff0000", row.Bookings[0].Color)
	assert.Equal(t, 150.0, row.Bookings[0].WidthPercent)
	assert.Equal(t, "#2196f3", row.Bookings[1].Color)
	assert.Equal(t, map[string]int{"st1": 2}, layout.Summary.ByStatus)
}

func TestBuildBlackoutAndBadDate(t *testing.T) {
	layout := Build(Snapshot{
		Date:     thursday,
		Settings: models.BookingSettings{BlackoutDates: []string{thursday}},
	})
	assert.True(t, layout.Blackout)
	assert.Equal(t, 40, layout.HeaderHeight)

	layout = Build(Snapshot{
		Date: "not-a-date",
		Settings: models.BookingSettings{BusinessHours: []models.DaySchedule{
			{Day: "Sunday", Open: "10:00", Close: "11:00"},
		}},
	})
	assert.Equal(t, DefaultSlots(60), layout.Slots)
}

func TestBuildClosedSundayUsesFallback(t *testing.T) {
	layout := Build(Snapshot{
		Date: "2026-10-18",
		Settings: models.BookingSettings{BusinessHours: []models.DaySchedule{
			{Day: "Sunday", Closed: true},
		}},
	})
	assert.Equal(t, DefaultSlots(60), layout.Slots)
}

func TestBuildIsIdempotent(t *testing.T) {
	bookings := []models.Booking{
		{ID: "1", ArrivalTime: "18:00", TableID: "T1", Guests: 2},
		{ID: "2", ArrivalTime: "18:15", TableNumber: "table 1", Guests: 3},
		{ID: "3", ArrivalTime: "19:00", TableNumber: "2", Guests: 5, Status: "late"},
		{ID: "4", ArrivalTime: "19:00", TableNumber: "nowhere", Guests: 1},
	}
	snap := Snapshot{Date: thursday, Tables: twoTables(), Bookings: bookings}

	first, err := json.Marshal(Build(snap))
	require.NoError(t, err)
	second, err := json.Marshal(Build(snap))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	reversed := make([]models.Booking, len(bookings))
	for i, b := range bookings {
		reversed[len(bookings)-1-i] = b
	}
	third, err := json.Marshal(Build(Snapshot{Date: thursday, Tables: twoTables(), Bookings: reversed}))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(third))
}

func TestBuildOvernightService(t *testing.T) {
	layout := Build(Snapshot{
		Date: "2026-10-16",
		Settings: models.BookingSettings{BusinessHours: []models.DaySchedule{
			{Day: "Friday", Open: "18:00", Close: "02:00"},
		}},
		Tables: twoTables(),
		Bookings: []models.Booking{
			{ID: "late", ArrivalTime: "00:30", TableID: "T1"},
			{ID: "early", ArrivalTime: "23:30", TableID: "T1"},
		},
	})

	assert.Equal(t, "18:00", layout.Slots[0])
	assert.Equal(t, "02:00", layout.Slots[len(layout.Slots)-1])
	row := rowByID(t, layout, "T1")
	require.Len(t, row.Bookings, 2)
	assert.Equal(t, "early", row.Bookings[0].BookingID)
	assert.Equal(t, "late", row.Bookings[1].BookingID)
	assert.Equal(t, 2, row.Bookings[1].TotalOverlapping)
}

func TestColorsAndTracking(t *testing.T) {
	assert.Equal(t, "#aabbcc", NormalizeColor("#ABC"))
	assert.Equal(t, "#4caf50", NormalizeColor("4CAF50"))
	assert.Equal(t, models.DefaultColor, NormalizeColor("red"))
	assert.Equal(t, models.DefaultColor, NormalizeColor(""))
	assert.Equal(t, models.DefaultColor, NormalizeColor("#12345g"))

	next, ok := NextTracking(models.TrackingSeated)
	assert.True(t, ok)
	assert.Equal(t, models.TrackingAppetizers, next)

	next, ok = NextTracking("")
	assert.True(t, ok)
	assert.Equal(t, models.TrackingArrived, next)

	_, ok = NextTracking(models.TrackingLeft)
	assert.False(t, ok)
	_, ok = NextTracking(models.TrackingNoShow)
	assert.False(t, ok)

	assert.True(t, ValidTracking(models.TrackingNoShow))
	assert.False(t, ValidTracking("Dancing"))
	assert.Len(t, TrackingLabels(), 11)
}
