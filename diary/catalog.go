package diary

import (
	"strings"

	"github.com/yeremiapane/restaurant-diary/models"
)

// CatalogItem is the part of a booking type or status the diary needs.
type CatalogItem struct {
	ID              string
	Name            string
	Color           string
	DefaultDuration int
}

// Catalog resolves references that may hold either an id or a name.
type Catalog struct {
	byID   map[string]CatalogItem
	byName map[string]string
}

func newCatalog(items []CatalogItem) *Catalog {
	c := &Catalog{
		byID:   make(map[string]CatalogItem, len(items)),
		byName: make(map[string]string, len(items)),
	}
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		it.Color = NormalizeColor(it.Color)
		c.byID[it.ID] = it
		key := strings.ToLower(strings.TrimSpace(it.Name))
		if _, taken := c.byName[key]; key != "" && !taken {
			c.byName[key] = it.ID
		}
	}
	return c
}

func NewTypeCatalog(types []models.BookingType) *Catalog {
	items := make([]CatalogItem, 0, len(types))
	for _, t := range types {
		items = append(items, CatalogItem{ID: t.ID, Name: t.Name, Color: t.Color, DefaultDuration: t.DefaultDuration})
	}
	return newCatalog(items)
}

func NewStatusCatalog(statuses []models.BookingStatus) *Catalog {
	items := make([]CatalogItem, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, CatalogItem{ID: s.ID, Name: s.Name, Color: s.Color})
	}
	return newCatalog(items)
}

// Resolve looks ref up by id first, then by case-insensitive name.
func (c *Catalog) Resolve(ref string) (CatalogItem, bool) {
	if c == nil || ref == "" {
		return CatalogItem{}, false
	}
	if it, ok := c.byID[ref]; ok {
		return it, true
	}
	if id, ok := c.byName[strings.ToLower(strings.TrimSpace(ref))]; ok {
		return c.byID[id], true
	}
	return CatalogItem{}, false
}

// Canonical returns the id for ref, or ref unchanged when it is unknown.
func (c *Catalog) Canonical(ref string) string {
	if it, ok := c.Resolve(ref); ok {
		return it.ID
	}
	return ref
}
