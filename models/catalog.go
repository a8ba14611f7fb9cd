package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultColor = "#4caf50"

type BookingType struct {
	ID              string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`
	Color           string         `gorm:"type:varchar(7);not null;default:'#4caf50'" json:"color"`
	DefaultDuration int            `gorm:"not null;default:0" json:"default_duration"`
	Metadata        datatypes.JSON `json:"metadata"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type BookingStatus struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Color     string         `gorm:"type:varchar(7);not null;default:'#4caf50'" json:"color"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type BookingTag struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Color     string         `gorm:"type:varchar(7);not null;default:'#4caf50'" json:"color"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func ensureObject(j *datatypes.JSON) {
	if len(*j) == 0 {
		*j = datatypes.JSON("{}")
	}
}

func (t *BookingType) BeforeCreate(tx *gorm.DB) error   { ensureID(&t.ID); return nil }
func (t *BookingType) BeforeSave(tx *gorm.DB) error     { ensureObject(&t.Metadata); return nil }
func (s *BookingStatus) BeforeCreate(tx *gorm.DB) error { ensureID(&s.ID); return nil }
func (s *BookingStatus) BeforeSave(tx *gorm.DB) error   { ensureObject(&s.Metadata); return nil }
func (t *BookingTag) BeforeCreate(tx *gorm.DB) error    { ensureID(&t.ID); return nil }
func (t *BookingTag) BeforeSave(tx *gorm.DB) error      { ensureObject(&t.Metadata); return nil }
