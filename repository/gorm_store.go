package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-diary/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const settingsRowID = 1

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) FetchBookings(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	q := s.DB.WithContext(ctx).Order("arrival_time ASC").Order("id ASC")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	return bookings, nil
}

func (s *GormStore) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return models.Booking{}, notFound(err)
	}
	return b, nil
}

func (s *GormStore) FetchTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := s.DB.WithContext(ctx).Order("sort_order ASC").Order("created_at ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("fetch tables: %w", err)
	}
	return tables, nil
}

func (s *GormStore) FetchBookingSettings(ctx context.Context) (models.BookingSettings, error) {
	var days []models.DaySchedule
	if err := s.DB.WithContext(ctx).Find(&days).Error; err != nil {
		return models.BookingSettings{}, fmt.Errorf("fetch business hours: %w", err)
	}
	sortSchedule(days)

	var row models.BookingSetting
	err := s.DB.WithContext(ctx).First(&row, settingsRowID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.BookingSettings{}, fmt.Errorf("fetch booking settings: %w", err)
	}

	return models.BookingSettings{
		BusinessHours: days,
		BlackoutDates: models.DecodeDates(row.BlackoutDates),
	}, nil
}

// SaveBookingSettings replaces the business hours and blackout dates.
func (s *GormStore) SaveBookingSettings(ctx context.Context, settings models.BookingSettings) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DaySchedule{}).Error; err != nil {
			return err
		}
		if len(settings.BusinessHours) > 0 {
			if err := tx.Create(&settings.BusinessHours).Error; err != nil {
				return err
			}
		}
		row := models.BookingSetting{ID: settingsRowID, BlackoutDates: models.EncodeDates(settings.BlackoutDates)}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
}

func (s *GormStore) FetchCatalogs(ctx context.Context) ([]models.BookingType, []models.BookingStatus, error) {
	var types []models.BookingType
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch booking types: %w", err)
	}
	var statuses []models.BookingStatus
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&statuses).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch booking statuses: %w", err)
	}
	return types, statuses, nil
}

func (s *GormStore) UpdateBooking(ctx context.Context, id string, fields map[string]interface{}) error {
	var b models.Booking
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return notFound(err)
	}
	if err := s.DB.WithContext(ctx).Model(&b).Updates(fields).Error; err != nil {
		return fmt.Errorf("update booking %s: %w", id, err)
	}
	return nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Create(n).Error
}
