package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/utils"
)

type SettingsController struct {
	Store *repository.GormStore
}

func NewSettingsController(store *repository.GormStore) *SettingsController {
	return &SettingsController{Store: store}
}

func (sc *SettingsController) GetBookingSettings(c *gin.Context) {
	settings, err := sc.Store.FetchBookingSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking settings", settings)
}

// normalizeSettings validates weekday names and times and returns a cleaned copy.
func normalizeSettings(in models.BookingSettings) (models.BookingSettings, error) {
	out := models.BookingSettings{BlackoutDates: []string{}}
	seen := map[string]bool{}
	for _, d := range in.BusinessHours {
		day := ""
		for w := time.Sunday; w <= time.Saturday; w++ {
			if strings.EqualFold(strings.TrimSpace(d.Day), w.String()) {
				day = w.String()
			}
		}
		if day == "" {
			return out, invalid(fmt.Sprintf("unknown day %q", d.Day))
		}
		if seen[day] {
			return out, invalid(fmt.Sprintf("%s listed twice", day))
		}
		seen[day] = true
		if !d.Closed && (!diary.ValidClock(d.Open) || !diary.ValidClock(d.Close)) {
			return out, invalid(fmt.Sprintf("%s needs open and close as HH:MM", day))
		}
		d.Day = day
		out.BusinessHours = append(out.BusinessHours, d)
	}

	dates := map[string]bool{}
	for _, date := range in.BlackoutDates {
		if !validDate(date) {
			return out, fmt.Errorf("%w: blackout %q", errInvalidDate, date)
		}
		if !dates[date] {
			dates[date] = true
			out.BlackoutDates = append(out.BlackoutDates, date)
		}
	}
	return out, nil
}

// UpdateBookingSettings replaces business hours and blackout dates.
func (sc *SettingsController) UpdateBookingSettings(c *gin.Context) {
	var body models.BookingSettings
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	settings, err := normalizeSettings(body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := sc.Store.SaveBookingSettings(ctx, settings); err != nil {
		respondServiceError(c, err)
		return
	}
	saved, err := sc.Store.FetchBookingSettings(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Booking settings updated: %d days, %d blackout dates", len(saved.BusinessHours), len(saved.BlackoutDates))
	utils.RespondJSON(c, http.StatusOK, "Booking settings updated", saved)
}
