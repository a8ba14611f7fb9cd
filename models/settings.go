package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DaySchedule is one weekday row of the business hours.
type DaySchedule struct {
	Day    string `gorm:"primaryKey;type:varchar(10)" json:"day"`
	Closed bool   `gorm:"not null;default:false" json:"closed"`
	Open   string `gorm:"type:varchar(5)" json:"open"`
	Close  string `gorm:"type:varchar(5)" json:"close"`
}

// BookingSetting is a singleton row (ID 1) holding the non-schedule settings.
type BookingSetting struct {
	ID            uint           `gorm:"primaryKey" json:"-"`
	BlackoutDates datatypes.JSON `json:"blackout_dates"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (s *BookingSetting) BeforeSave(tx *gorm.DB) error {
	if len(s.BlackoutDates) == 0 {
		s.BlackoutDates = datatypes.JSON("[]")
	}
	return nil
}

// BookingSettings is the read model handed to the diary.
type BookingSettings struct {
	BusinessHours []DaySchedule `json:"business_hours"`
	BlackoutDates []string      `json:"blackout_dates"`
}

func (s BookingSettings) IsBlackout(date string) bool {
	for _, d := range s.BlackoutDates {
		if d == date {
			return true
		}
	}
	return false
}

func DecodeDates(j datatypes.JSON) []string {
	var out []string
	if len(j) == 0 {
		return out
	}
	_ = json.Unmarshal(j, &out)
	return out
}

func EncodeDates(dates []string) datatypes.JSON {
	if len(dates) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(dates)
	return datatypes.JSON(data)
}
