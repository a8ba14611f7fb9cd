package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications, newest first. ?booking_id= narrows to one booking.
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	var notifs []models.Notification
	q := nc.DB.Order("created_at DESC").Order("id DESC")
	if id := c.Query("booking_id"); id != "" {
		q = q.Where("booking_id = ?", id)
	}
	if err := q.Find(&notifs).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, invalid("notif_id must be a number"))
		return
	}

	res := nc.DB.Delete(&models.Notification{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondServiceError(c, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}
