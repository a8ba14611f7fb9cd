package services

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-diary/cache"
	"github.com/yeremiapane/restaurant-diary/database"
	"github.com/yeremiapane/restaurant-diary/live"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

// WatchedTables are the tables whose writes affect a diary layout.
var WatchedTables = []string{
	"bookings",
	"tables",
	"day_schedules",
	"booking_settings",
	"booking_types",
	"booking_statuses",
}

const changeBatchSize = 100

// ChangeMonitor polls the change log, drops cached layouts that a change
// touches and tells websocket subscribers to refresh.
type ChangeMonitor struct {
	DB       *gorm.DB
	Cache    cache.LayoutCache
	Hub      Broadcaster
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB, layoutCache cache.LayoutCache, hub Broadcaster, interval time.Duration) *ChangeMonitor {
	if interval <= 0 {
		interval = 1 * time.Second
	}
	return &ChangeMonitor{
		DB:       db,
		Cache:    layoutCache,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// CheckChanges processes one batch of unprocessed changes and returns how
// many it handled.
func (cm *ChangeMonitor) CheckChanges() int {
	var changes []models.DBChange
	if err := cm.DB.Where("processed = ?", false).
		Order("id ASC").
		Limit(changeBatchSize).
		Find(&changes).Error; err != nil {
		utils.ErrorLogger.Errorf("Error fetching changes: %v", err)
		return 0
	}
	if len(changes) == 0 {
		return 0
	}

	ids := make([]uint, 0, len(changes))
	for _, change := range changes {
		utils.InfoLogger.Debugf("Processing change: table=%s, action=%s, record_id=%s",
			change.TableName, change.ActionType, change.RecordID)

		switch change.TableName {
		case "bookings":
			cm.processBookingChange(change)
		case "tables":
			cm.processTableChange(change)
		default:
			cm.Cache.InvalidateAll(context.Background())
			cm.broadcast(live.Message{
				Event: live.EventLayoutUpdate,
				Data:  map[string]string{"source": change.TableName, "action": change.ActionType},
			})
		}
		ids = append(ids, change.ID)
	}

	if err := cm.DB.Model(&models.DBChange{}).
		Where("id IN ?", ids).
		Update("processed", true).Error; err != nil {
		utils.ErrorLogger.Errorf("Error marking changes as processed: %v", err)
		return 0
	}

	utils.InfoLogger.Printf("Successfully processed %d changes", len(changes))
	return len(changes)
}

func (cm *ChangeMonitor) broadcast(msg live.Message) {
	if cm.Hub != nil {
		cm.Hub.Broadcast(msg)
	}
}

func (cm *ChangeMonitor) processBookingChange(change models.DBChange) {
	ctx := context.Background()
	if change.Scope != "" {
		cm.Cache.InvalidateDate(ctx, change.Scope)
	} else {
		cm.Cache.InvalidateAll(ctx)
	}

	if change.ActionType == database.ActionDelete {
		cm.broadcast(live.Message{
			Event: live.EventBookingDelete,
			Date:  change.Scope,
			Data:  map[string]string{"id": change.RecordID},
		})
		return
	}

	var booking models.Booking
	if err := cm.DB.First(&booking, "id = ?", change.RecordID).Error; err != nil {
		utils.ErrorLogger.Errorf("Error fetching booking %s: %v", change.RecordID, err)
		return
	}
	cm.broadcast(live.Message{Event: live.EventBookingUpdate, Date: booking.Date, Data: booking})
}

func (cm *ChangeMonitor) processTableChange(change models.DBChange) {
	cm.Cache.InvalidateAll(context.Background())

	data := map[string]interface{}{"id": change.RecordID, "action": change.ActionType}
	if change.ActionType != database.ActionDelete {
		var table models.Table
		if err := cm.DB.First(&table, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Errorf("Error fetching table %s: %v", change.RecordID, err)
			return
		}
		data["table"] = table
	}
	cm.broadcast(live.Message{Event: live.EventTableUpdate, Data: data})
}
