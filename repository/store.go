package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/yeremiapane/restaurant-diary/models"
)

var ErrNotFound = errors.New("record not found")

// BookingRepository is the boundary the diary reads its snapshot from and
// writes booking field changes through.
type BookingRepository interface {
	FetchBookings(ctx context.Context, date string) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (models.Booking, error)
	FetchTables(ctx context.Context) ([]models.Table, error)
	FetchBookingSettings(ctx context.Context) (models.BookingSettings, error)
	FetchCatalogs(ctx context.Context) ([]models.BookingType, []models.BookingStatus, error)
	UpdateBooking(ctx context.Context, id string, fields map[string]interface{}) error
	CreateNotification(ctx context.Context, n *models.Notification) error
}

var weekdayIndex = map[string]int{}

func init() {
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdayIndex[d.String()] = int(d)
	}
}

func sortSchedule(days []models.DaySchedule) {
	sort.SliceStable(days, func(i, j int) bool {
		return weekdayIndex[days[i].Day] < weekdayIndex[days[j].Day]
	})
}
