package diary

import (
	"sort"

	"github.com/yeremiapane/restaurant-diary/models"
)

const UnassignedName = "Unassigned"

// Snapshot is the read model the diary is computed from.
type Snapshot struct {
	Date     string                 `json:"date"`
	Bookings []models.Booking       `json:"bookings"`
	Tables   []models.Table         `json:"tables"`
	Settings models.BookingSettings `json:"settings"`
	Types    []models.BookingType   `json:"types"`
	Statuses []models.BookingStatus `json:"statuses"`
}

type Row struct {
	TableID   string      `json:"table_id"`
	TableName string      `json:"table_name"`
	Section   string      `json:"section,omitempty"`
	Capacity  int         `json:"capacity"`
	Active    bool        `json:"active"`
	Height    int         `json:"height"`
	Bookings  []Placement `json:"bookings"`
}

type Summary struct {
	Bookings   int            `json:"bookings"`
	Covers     int            `json:"covers"`
	Unassigned int            `json:"unassigned"`
	ByStatus   map[string]int `json:"by_status"`
}

type Layout struct {
	Date         string   `json:"date"`
	Blackout     bool     `json:"blackout"`
	Slots        []string `json:"slots"`
	HeaderHeight int      `json:"header_height"`
	Rows         []Row    `json:"rows"`
	Summary      Summary  `json:"summary"`
}

// SortTables orders tables by their order field, keeping input order on ties.
func SortTables(tables []models.Table) []models.Table {
	sorted := make([]models.Table, len(tables))
	copy(sorted, tables)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// Build computes the diary grid for one day. It never fails: unreadable
// input degrades to defaults and unplaceable bookings go to the Unassigned row.
func Build(s Snapshot) *Layout {
	hours := s.Settings.BusinessHours
	weekday, validDate := Weekday(s.Date)
	if !validDate {
		hours = nil
	}
	dayStart := ServiceStart(hours, weekday)
	base := GenerateSlots(hours, weekday, GranularityHour)

	types := NewTypeCatalog(s.Types)
	statuses := NewStatusCatalog(s.Statuses)

	entries := make([]Entry, 0, len(s.Bookings))
	arrivals := make([]string, 0, len(s.Bookings))
	summary := Summary{ByStatus: map[string]int{}}
	for _, b := range s.Bookings {
		b.BookingType = types.Canonical(b.BookingType)
		b.Status = statuses.Canonical(b.Status)
		if b.EndTime == "" && b.DurationMinutes <= 0 {
			if t, ok := types.Resolve(b.BookingType); ok && t.DefaultDuration > 0 {
				b.DurationMinutes = t.DefaultDuration
			}
		}
		entries = append(entries, NewEntry(b, dayStart))
		arrivals = append(arrivals, b.ArrivalTime)

		summary.Bookings++
		if b.Guests > 0 {
			summary.Covers += b.Guests
		} else {
			summary.Covers++
		}
		status := b.Status
		if status == "" {
			status = "none"
		}
		summary.ByStatus[status]++
	}
	entries = sortEntries(entries)
	slots := ExtendSlots(base, arrivals, GranularityHour, dayStart)

	tables := SortTables(s.Tables)
	idx := NewTableIndex(tables)

	placed := make(map[string]bool, len(entries))
	layout := &Layout{
		Date:     s.Date,
		Blackout: s.Settings.IsBlackout(s.Date),
		Slots:    slots,
		Rows:     make([]Row, 0, len(tables)+1),
	}

	for _, t := range tables {
		var onTable []Entry
		for _, e := range entries {
			if idx.onTable(e.ref, t.ID) {
				onTable = append(onTable, e)
				placed[e.ID] = true
			}
		}
		if !t.Active && len(onTable) == 0 {
			continue
		}
		row := buildRow(onTable, slots, dayStart, types, statuses)
		row.TableID = t.ID
		row.TableName = t.Name
		row.Section = t.Section
		row.Capacity = t.Capacity
		row.Active = t.Active
		for i := range row.Bookings {
			row.Bookings[i].TableID = t.ID
		}
		layout.Rows = append(layout.Rows, row)
	}

	var unassigned []Entry
	for _, e := range entries {
		if !placed[e.ID] {
			unassigned = append(unassigned, e)
		}
	}
	summary.Unassigned = len(unassigned)
	if len(unassigned) > 0 {
		row := buildRow(unassigned, slots, dayStart, types, statuses)
		row.TableName = UnassignedName
		layout.Rows = append(layout.Rows, row)
	}

	layout.HeaderHeight = minRowHeight
	for _, r := range layout.Rows {
		if r.Height > layout.HeaderHeight {
			layout.HeaderHeight = r.Height
		}
	}
	layout.Summary = summary
	return layout
}

func buildRow(entries []Entry, slots []string, dayStart int, types, statuses *Catalog) Row {
	stacks := StackOverlaps(entries)
	height := RowHeight(MaxConcurrent(entries, slots, dayStart))

	row := Row{Height: height, Bookings: make([]Placement, 0, len(entries))}
	for _, e := range sortEntries(entries) {
		p := Project(e, stacks[e.ID], height)
		p.Color = bookingColor(e.Booking, types, statuses)
		p.BookingType = e.Booking.BookingType
		p.Status = e.Booking.Status
		p.Tracking = e.Booking.Tracking
		p.Guests = e.Booking.Guests
		p.CustomerName = e.Booking.CustomerName
		p.MultiTable = len(e.ref.selected) > 1
		row.Bookings = append(row.Bookings, p)
	}
	return row
}

// bookingColor prefers the booking type's color, then the status color.
func bookingColor(b models.Booking, types, statuses *Catalog) string {
	if t, ok := types.Resolve(b.BookingType); ok {
		return t.Color
	}
	if s, ok := statuses.Resolve(b.Status); ok {
		return s.Color
	}
	return models.DefaultColor
}
