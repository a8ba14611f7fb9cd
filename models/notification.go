package models

import (
	"time"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(100)" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Level     string    `gorm:"type:varchar(10);not null;default:'info'" json:"level"`
	BookingID string    `gorm:"type:varchar(64);index" json:"booking_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
