package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tracking labels, in dining order.
const (
	TrackingNotArrived = "Not Arrived"
	TrackingArrived    = "Arrived"
	TrackingSeated     = "Seated"
	TrackingAppetizers = "Appetizers"
	TrackingStarters   = "Starters"
	TrackingMains      = "Mains"
	TrackingDesserts   = "Desserts"
	TrackingBill       = "Bill"
	TrackingPaid       = "Paid"
	TrackingLeft       = "Left"
	TrackingNoShow     = "No Show"
)

type Booking struct {
	ID              string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Date            string         `gorm:"type:varchar(10);not null;index" json:"date"`
	ArrivalTime     string         `gorm:"type:varchar(5);not null" json:"arrival_time"`
	EndTime         string         `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	DurationMinutes int            `gorm:"column:duration_minutes;not null;default:0" json:"duration"`
	TableID         string         `gorm:"type:varchar(64)" json:"table_id,omitempty"`
	TableNumber     string         `gorm:"type:varchar(50)" json:"table_number,omitempty"`
	SelectedTables  datatypes.JSON `json:"selected_tables"`
	BookingType     string         `gorm:"type:varchar(64)" json:"booking_type,omitempty"`
	Status          string         `gorm:"type:varchar(64)" json:"status,omitempty"`
	Tracking        string         `gorm:"type:varchar(20);not null;default:'Not Arrived'" json:"tracking"`
	Guests          int            `gorm:"not null;default:1" json:"guests"`
	CustomerName    string         `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave keeps selected_tables non-null so rows always scan back.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if len(b.SelectedTables) == 0 {
		b.SelectedTables = datatypes.JSON("[]")
	}
	if b.Tracking == "" {
		b.Tracking = TrackingNotArrived
	}
	return nil
}

// Tables decodes selected_tables. Malformed content reads as no tables.
func (b Booking) Tables() []string {
	if len(b.SelectedTables) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b.SelectedTables, &out); err != nil {
		return nil
	}
	return out
}

func (b *Booking) SetTables(ids []string) {
	if len(ids) == 0 {
		b.SelectedTables = datatypes.JSON("[]")
		return
	}
	data, _ := json.Marshal(ids)
	b.SelectedTables = datatypes.JSON(data)
}

// TablesJSON encodes a table list for column updates.
func TablesJSON(ids []string) datatypes.JSON {
	var b Booking
	b.SetTables(ids)
	return b.SelectedTables
}
