package diary

import (
	"strings"
	"unicode"

	"github.com/yeremiapane/restaurant-diary/models"
)

// TableIndex resolves the loose table references carried by bookings
// (id, display name, numeric label, multi-table list) to table ids.
type TableIndex struct {
	ids      map[string]bool
	byName   map[string]string
	byAlnum  map[string]string
	byDigits map[string][]string
}

// tableRef is the table-related part of a booking, decoded once.
type tableRef struct {
	selected    []string
	tableID     string
	tableNumber string
}

func refOf(b models.Booking) tableRef {
	return tableRef{
		selected:    b.Tables(),
		tableID:     strings.TrimSpace(b.TableID),
		tableNumber: strings.TrimSpace(b.TableNumber),
	}
}

// NewTableIndex indexes tables in the given order; when two tables share a
// name the earlier one wins.
func NewTableIndex(tables []models.Table) *TableIndex {
	idx := &TableIndex{
		ids:      make(map[string]bool, len(tables)),
		byName:   make(map[string]string, len(tables)),
		byAlnum:  make(map[string]string, len(tables)),
		byDigits: make(map[string][]string),
	}
	for _, t := range tables {
		if t.ID == "" || idx.ids[t.ID] {
			continue
		}
		idx.ids[t.ID] = true
		if key := nameKey(t.Name); key != "" {
			if _, taken := idx.byName[key]; !taken {
				idx.byName[key] = t.ID
			}
		}
		if key := alnumKey(t.Name); key != "" {
			if _, taken := idx.byAlnum[key]; !taken {
				idx.byAlnum[key] = t.ID
			}
		}
		if key, ok := digitKey(t.Name); ok {
			idx.byDigits[key] = append(idx.byDigits[key], t.ID)
		}
	}
	return idx
}

// nameKey folds case and drops whitespace.
func nameKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func alnumKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitKey extracts the digits of s as a number without leading zeros.
func digitKey(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	key := strings.TrimLeft(b.String(), "0")
	if key == "" {
		key = "0"
	}
	return key, true
}

func (idx *TableIndex) byNameRef(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	id, ok := idx.byName[nameKey(ref)]
	return id, ok
}

// Resolve returns the canonical table id for a booking, or false when the
// booking is unassigned.
func (idx *TableIndex) Resolve(b models.Booking) (string, bool) {
	return idx.resolve(refOf(b))
}

func (idx *TableIndex) resolve(ref tableRef) (string, bool) {
	if len(ref.selected) > 0 {
		for _, s := range ref.selected {
			if idx.ids[s] {
				return s, true
			}
		}
		for _, s := range ref.selected {
			if id, ok := idx.byNameRef(s); ok {
				return id, true
			}
		}
	}

	for _, s := range []string{ref.tableID, ref.tableNumber} {
		if s != "" && idx.ids[s] {
			return s, true
		}
	}
	if id, ok := idx.byNameRef(ref.tableNumber); ok {
		return id, true
	}
	if id, ok := idx.byNameRef(ref.tableID); ok {
		return id, true
	}

	candidates := make([]string, 0, len(ref.selected)+2)
	candidates = append(candidates, ref.selected...)
	candidates = append(candidates, ref.tableNumber, ref.tableID)

	for _, s := range candidates {
		if key := alnumKey(s); key != "" {
			if id, ok := idx.byAlnum[key]; ok {
				return id, true
			}
		}
	}
	for _, s := range candidates {
		if key, ok := digitKey(s); ok {
			if ids := idx.byDigits[key]; len(ids) == 1 {
				return ids[0], true
			}
		}
	}
	return "", false
}

// IsBookingOnTable reports whether the booking occupies tableID, either via its
// multi-table list or its single resolved table.
func (idx *TableIndex) IsBookingOnTable(b models.Booking, tableID string) bool {
	return idx.onTable(refOf(b), tableID)
}

func (idx *TableIndex) onTable(ref tableRef, tableID string) bool {
	if tableID == "" {
		return false
	}
	for _, s := range ref.selected {
		if s == tableID {
			return true
		}
		if id, ok := idx.byNameRef(s); ok && id == tableID {
			return true
		}
	}
	id, ok := idx.resolve(ref)
	return ok && id == tableID
}
