package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/services"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

var (
	errInvalidDate     = errors.New("date must be YYYY-MM-DD")
	errBlackoutDate    = errors.New("bookings are closed on this date")
	errBadDurationUnit = errors.New("duration_unit must be minutes or hours")
)

// validationError marks a request the client has to fix.
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

func invalid(msg string) error { return validationError{msg: msg} }

// respondServiceError maps repository and service errors onto status codes.
func respondServiceError(c *gin.Context, err error) {
	var verr validationError
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &verr),
		errors.Is(err, services.ErrUnknownTable),
		errors.Is(err, services.ErrInvalidTracking),
		errors.Is(err, services.ErrTrackingFinal),
		errors.Is(err, errInvalidDate),
		errors.Is(err, errBadDurationUnit):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, errBlackoutDate):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
