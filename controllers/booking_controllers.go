package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/services"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

type BookingController struct {
	DB    *gorm.DB
	Store *repository.GormStore
	Diary *services.DiaryService
}

func NewBookingController(db *gorm.DB, diarySvc *services.DiaryService) *BookingController {
	return &BookingController{DB: db, Store: repository.NewGormStore(db), Diary: diarySvc}
}

// looseString accepts a JSON string or number. Older clients send table
// numbers as numbers.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = looseString(n.String())
	return nil
}

type bookingRequest struct {
	ID             string       `json:"id"`
	Date           *string      `json:"date"`
	ArrivalTime    *string      `json:"arrival_time"`
	EndTime        *string      `json:"end_time"`
	Duration       *float64     `json:"duration"`
	DurationUnit   string       `json:"duration_unit"`
	TableID        *looseString `json:"table_id"`
	TableNumber    *looseString `json:"table_number"`
	SelectedTables *[]string    `json:"selected_tables"`
	BookingType    *string      `json:"booking_type"`
	Status         *string      `json:"status"`
	Tracking       *string      `json:"tracking"`
	Guests         *int         `json:"guests"`
	Covers         *int         `json:"covers"`
	CustomerName   *string      `json:"customer_name"`
	Notes          *string      `json:"notes"`
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// A booking never spans more than a week.
const maxDurationMinutes = 7 * 24 * 60

// durationMinutes converts the request duration into minutes.
func durationMinutes(value float64, unit string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "minutes", "minute", "min":
	case "hours", "hour", "h":
		value *= 60
	default:
		return 0, errBadDurationUnit
	}
	if value < 0 {
		return 0, invalid("duration cannot be negative")
	}
	if value > maxDurationMinutes {
		return 0, invalid(fmt.Sprintf("duration cannot exceed %d minutes", maxDurationMinutes))
	}
	return int(math.Round(value)), nil
}

// apply copies the request onto b and returns the changed columns.
func (req bookingRequest) apply(b *models.Booking, types, statuses *diary.Catalog) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if req.Date != nil {
		if !validDate(*req.Date) {
			return nil, errInvalidDate
		}
		b.Date = *req.Date
		fields["date"] = b.Date
	}
	if req.ArrivalTime != nil {
		if !diary.ValidClock(*req.ArrivalTime) {
			return nil, invalid("arrival_time must be HH:MM")
		}
		b.ArrivalTime = *req.ArrivalTime
		fields["arrival_time"] = b.ArrivalTime
	}
	if req.EndTime != nil {
		if *req.EndTime != "" && !diary.ValidClock(*req.EndTime) {
			return nil, invalid("end_time must be HH:MM")
		}
		b.EndTime = *req.EndTime
		fields["end_time"] = b.EndTime
	}
	if req.Duration != nil {
		minutes, err := durationMinutes(*req.Duration, req.DurationUnit)
		if err != nil {
			return nil, err
		}
		b.DurationMinutes = minutes
		fields["duration_minutes"] = minutes
	}
	if req.TableID != nil {
		b.TableID = string(*req.TableID)
		fields["table_id"] = b.TableID
	}
	if req.TableNumber != nil {
		b.TableNumber = string(*req.TableNumber)
		fields["table_number"] = b.TableNumber
	}
	if req.SelectedTables != nil {
		b.SetTables(*req.SelectedTables)
		fields["selected_tables"] = b.SelectedTables
	}
	if req.BookingType != nil {
		b.BookingType = types.Canonical(strings.TrimSpace(*req.BookingType))
		fields["booking_type"] = b.BookingType
	}
	if req.Status != nil {
		b.Status = statuses.Canonical(strings.TrimSpace(*req.Status))
		fields["status"] = b.Status
	}
	if req.Tracking != nil {
		if !diary.ValidTracking(*req.Tracking) {
			return nil, fmt.Errorf("%w: %q", services.ErrInvalidTracking, *req.Tracking)
		}
		b.Tracking = *req.Tracking
		fields["tracking"] = b.Tracking
	}
	guests := req.Guests
	if guests == nil {
		guests = req.Covers
	}
	if guests != nil {
		if *guests < 1 {
			return nil, invalid("guests must be at least 1")
		}
		b.Guests = *guests
		fields["guests"] = b.Guests
	}
	if req.CustomerName != nil {
		b.CustomerName = strings.TrimSpace(*req.CustomerName)
		fields["customer_name"] = b.CustomerName
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
		fields["notes"] = b.Notes
	}
	return fields, nil
}

func (bc *BookingController) catalogs(c *gin.Context) (*diary.Catalog, *diary.Catalog, error) {
	types, statuses, err := bc.Store.FetchCatalogs(c.Request.Context())
	if err != nil {
		return nil, nil, err
	}
	return diary.NewTypeCatalog(types), diary.NewStatusCatalog(statuses), nil
}

func (bc *BookingController) checkBlackout(c *gin.Context, date string) error {
	settings, err := bc.Store.FetchBookingSettings(c.Request.Context())
	if err != nil {
		return err
	}
	if settings.IsBlackout(date) {
		return fmt.Errorf("%w: %s", errBlackoutDate, date)
	}
	return nil
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Date == nil || req.ArrivalTime == nil {
		utils.RespondError(c, http.StatusBadRequest, invalid("date and arrival_time are required"))
		return
	}

	types, statuses, err := bc.catalogs(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	booking := models.Booking{ID: req.ID, Guests: 1}
	if _, err := req.apply(&booking, types, statuses); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := bc.checkBlackout(c, booking.Date); err != nil {
		respondServiceError(c, err)
		return
	}
	if booking.DurationMinutes == 0 && booking.EndTime == "" {
		if t, ok := types.Resolve(booking.BookingType); ok {
			booking.DurationMinutes = t.DefaultDuration
		}
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s created for %s %s (%d guests)", booking.ID, booking.Date, booking.ArrivalTime, booking.Guests)
	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", booking)
}

// GetAllBookings -> ?date= limits to one day
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	date := c.Query("date")
	if date != "" && !validDate(date) {
		respondServiceError(c, errInvalidDate)
		return
	}
	bookings, err := bc.Store.FetchBookings(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	booking, err := bc.Store.GetBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	ctx := c.Request.Context()
	booking, err := bc.Store.GetBooking(ctx, c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	types, statuses, err := bc.catalogs(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	previousDate := booking.Date
	fields, err := req.apply(&booking, types, statuses)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(fields) == 0 {
		utils.RespondError(c, http.StatusBadRequest, invalid("nothing to update"))
		return
	}
	if booking.Date != previousDate {
		if err := bc.checkBlackout(c, booking.Date); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	if err := bc.Store.UpdateBooking(ctx, booking.ID, fields); err != nil {
		respondServiceError(c, err)
		return
	}
	updated, err := bc.Store.GetBooking(ctx, booking.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking updated", updated)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", c.Param("booking_id")).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := bc.DB.Delete(&booking).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Booking %s deleted", booking.ID)
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", gin.H{"booking_id": booking.ID})
}

// ReassignTable -> PATCH /bookings/:booking_id/table
func (bc *BookingController) ReassignTable(c *gin.Context) {
	var body struct {
		TableIDs []string `json:"table_ids"`
		TableID  string   `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	ids := body.TableIDs
	if len(ids) == 0 && body.TableID != "" {
		ids = []string{body.TableID}
	}

	result, err := bc.Diary.ReassignTable(c.Request.Context(), services.ReassignCommand{
		BookingID: c.Param("booking_id"),
		TableIDs:  ids,
	})
	if err != nil {
		if result.Reverted {
			utils.RespondErrorData(c, http.StatusBadGateway, err, result)
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking moved", result)
}

type trackingState struct {
	BookingID string   `json:"booking_id"`
	Tracking  string   `json:"tracking"`
	Next      string   `json:"next,omitempty"`
	Final     bool     `json:"final"`
	Labels    []string `json:"labels"`
}

// GetTracking shows where a booking is in the service flow.
func (bc *BookingController) GetTracking(c *gin.Context) {
	booking, err := bc.Store.GetBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	state := trackingState{
		BookingID: booking.ID,
		Tracking:  booking.Tracking,
		Labels:    diary.TrackingLabels(),
	}
	if state.Tracking == "" {
		state.Tracking = models.TrackingNotArrived
	}
	if next, ok := diary.NextTracking(state.Tracking); ok {
		state.Next = next
	} else {
		state.Final = true
	}
	utils.RespondJSON(c, http.StatusOK, "Booking tracking", state)
}

// UpdateTracking -> an empty body advances one step
func (bc *BookingController) UpdateTracking(c *gin.Context) {
	var body struct {
		Tracking string `json:"tracking"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	booking, err := bc.Diary.UpdateTracking(c.Request.Context(), c.Param("booking_id"), body.Tracking)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tracking updated", booking)
}

func (bc *BookingController) SetStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Diary.SetStatus(c.Request.Context(), c.Param("booking_id"), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Status updated", booking)
}
