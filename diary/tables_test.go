package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-diary/models"
)

func withTables(b models.Booking, ids ...string) models.Booking {
	b.SetTables(ids)
	return b
}

func TestResolveTable(t *testing.T) {
	tables := []models.Table{
		{ID: "T1", Name: "Table 1"},
		{ID: "T2", Name: "Window Seat"},
		{ID: "T5", Name: "Table 05"},
		{ID: "B7", Name: "Bar-7"},
	}
	idx := NewTableIndex(tables)

	tests := []struct {
		name    string
		booking models.Booking
		want    string
		found   bool
	}{
		{"selected first valid", withTables(models.Booking{}, "T9", "T1"), "T1", true},
		{"selected skips missing", withTables(models.Booking{}, "T1", "T9"), "T1", true},
		{"selected by name", withTables(models.Booking{}, "nope", "window seat"), "T2", true},
		{"literal table id", models.Booking{TableID: "T2"}, "T2", true},
		{"table number as id", models.Booking{TableNumber: "T1"}, "T1", true},
		{"table number as name", models.Booking{TableNumber: "TABLE 1"}, "T1", true},
		{"table id as name", models.Booking{TableID: "windowseat"}, "T2", true},
		{"alphanumeric name", models.Booking{TableNumber: "bar 7"}, "B7", true},
		{"digits ignore leading zeros", models.Booking{TableNumber: "5"}, "T5", true},
		{"no reference", models.Booking{}, "", false},
		{"unknown reference", models.Booking{TableNumber: "99"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Resolve(tt.booking)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTableAmbiguousDigits(t *testing.T) {
	idx := NewTableIndex([]models.Table{
		{ID: "A", Name: "Table 5"},
		{ID: "B", Name: "Patio 5"},
	})

	_, ok := idx.Resolve(models.Booking{TableNumber: "5"})
	assert.False(t, ok)
}

func TestResolveTableDeterministic(t *testing.T) {
	idx := NewTableIndex([]models.Table{
		{ID: "A", Name: "Terrace"},
		{ID: "B", Name: "terrace"},
		{ID: "C", Name: "Table 3"},
	})
	booking := models.Booking{TableNumber: "TERRACE"}

	first, ok := idx.Resolve(booking)
	assert.True(t, ok)
	assert.Equal(t, "A", first)
	for i := 0; i < 50; i++ {
		got, _ := idx.Resolve(booking)
		assert.Equal(t, first, got)
	}
}

func TestIsBookingOnTable(t *testing.T) {
	idx := NewTableIndex([]models.Table{
		{ID: "T1", Name: "One"},
		{ID: "T2", Name: "Two"},
		{ID: "T3", Name: "Three"},
	})

	multi := withTables(models.Booking{}, "T1", "two")
	assert.True(t, idx.IsBookingOnTable(multi, "T1"))
	assert.True(t, idx.IsBookingOnTable(multi, "T2"))
	assert.False(t, idx.IsBookingOnTable(multi, "T3"))

	single := models.Booking{TableNumber: "three"}
	assert.True(t, idx.IsBookingOnTable(single, "T3"))
	assert.False(t, idx.IsBookingOnTable(single, "T1"))
	assert.False(t, idx.IsBookingOnTable(single, ""))
}
