package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-diary/models"
	"gorm.io/datatypes"
)

// MemoryStore keeps everything in maps. The diary service tests run on it.
type MemoryStore struct {
	bookings      map[string]models.Booking
	tables        []models.Table
	settings      models.BookingSettings
	types         []models.BookingType
	statuses      []models.BookingStatus
	notifications []models.Notification
	mutex         sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: make(map[string]models.Booking),
	}
}

func (s *MemoryStore) PutBooking(b models.Booking) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.bookings[b.ID] = b
}

func (s *MemoryStore) PutTables(tables ...models.Table) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tables = append(s.tables, tables...)
}

func (s *MemoryStore) PutSettings(settings models.BookingSettings) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.settings = settings
}

func (s *MemoryStore) PutCatalogs(types []models.BookingType, statuses []models.BookingStatus) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.types = types
	s.statuses = statuses
}

func (s *MemoryStore) Notifications() []models.Notification {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *MemoryStore) FetchBookings(ctx context.Context, date string) ([]models.Booking, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if date == "" || b.Date == date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ArrivalTime != out[j].ArrivalTime {
			return out[i].ArrivalTime < out[j].ArrivalTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	b, exists := s.bookings[id]
	if !exists {
		return models.Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) FetchTables(ctx context.Context) ([]models.Table, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Table, len(s.tables))
	copy(out, s.tables)
	return out, nil
}

func (s *MemoryStore) FetchBookingSettings(ctx context.Context) (models.BookingSettings, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	days := make([]models.DaySchedule, len(s.settings.BusinessHours))
	copy(days, s.settings.BusinessHours)
	sortSchedule(days)
	return models.BookingSettings{
		BusinessHours: days,
		BlackoutDates: append([]string(nil), s.settings.BlackoutDates...),
	}, nil
}

func (s *MemoryStore) FetchCatalogs(ctx context.Context) ([]models.BookingType, []models.BookingStatus, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.BookingType(nil), s.types...), append([]models.BookingStatus(nil), s.statuses...), nil
}

// UpdateBooking applies column-named fields, the same keys the gorm store takes.
func (s *MemoryStore) UpdateBooking(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	b, exists := s.bookings[id]
	if !exists {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "table_id":
			b.TableID, _ = value.(string)
		case "table_number":
			b.TableNumber, _ = value.(string)
		case "selected_tables":
			switch v := value.(type) {
			case datatypes.JSON:
				b.SelectedTables = v
			case []string:
				b.SetTables(v)
			}
		case "tracking":
			b.Tracking, _ = value.(string)
		case "status":
			b.Status, _ = value.(string)
		case "booking_type":
			b.BookingType, _ = value.(string)
		default:
			return fmt.Errorf("update booking %s: unsupported field %q", id, key)
		}
	}
	b.UpdatedAt = time.Now()
	s.bookings[id] = b
	return nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	n.ID = uint(len(s.notifications) + 1)
	n.CreatedAt = time.Now()
	s.notifications = append(s.notifications, *n)
	return nil
}
