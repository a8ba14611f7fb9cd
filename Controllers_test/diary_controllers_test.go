package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/models"
)

func TestGetDiaryLayout(t *testing.T) {
	r, db := setupRouter(t)
	require.NoError(t, db.Create(&models.Table{ID: "t1", Name: "1", Order: 1, Active: true}).Error)
	require.NoError(t, db.Create(&models.Table{ID: "t2", Name: "2", Order: 2, Active: true}).Error)
	require.NoError(t, db.Create(&models.Booking{ID: "a", Date: "2026-10-15", ArrivalTime: "19:00", DurationMinutes: 60, TableNumber: "1", Guests: 2}).Error)
	require.NoError(t, db.Create(&models.Booking{ID: "b", Date: "2026-10-15", ArrivalTime: "19:30", DurationMinutes: 60, TableID: "t1", Guests: 3}).Error)
	require.NoError(t, db.Create(&models.Booking{ID: "c", Date: "2026-10-15", ArrivalTime: "20:00", TableNumber: "99", Guests: 2}).Error)

	w, env := doJSON(t, r, http.MethodGet, "/diary?date=2026-10-15", nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var layout diary.Layout
	decode(t, env.Data, &layout)
	require.Len(t, layout.Rows, 3)
	assert.Equal(t, "t1", layout.Rows[0].TableID)
	assert.Len(t, layout.Rows[0].Bookings, 2)
	assert.Equal(t, 2, layout.Rows[0].Bookings[0].TotalOverlapping)
	assert.Equal(t, 50, layout.Rows[0].Height)
	assert.Equal(t, diary.UnassignedName, layout.Rows[2].TableName)
	assert.Equal(t, 50, layout.HeaderHeight)
	assert.Equal(t, 3, layout.Summary.Bookings)
	assert.Equal(t, 7, layout.Summary.Covers)
	assert.Equal(t, "09:00", layout.Slots[0])

	w, _ = doJSON(t, r, http.MethodGet, "/diary?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDiarySlots(t *testing.T) {
	r, _ := setupRouter(t)

	w, _ := doJSON(t, r, http.MethodPut, "/settings/booking", map[string]interface{}{
		"business_hours": []map[string]interface{}{{"day": "Friday", "open": "18:00", "close": "02:00"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, r, http.MethodGet, "/diary/slots?date=2026-10-16&granularity=60", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Granularity int      `json:"granularity"`
		Slots       []string `json:"slots"`
	}
	decode(t, env.Data, &body)
	assert.Equal(t, 60, body.Granularity)
	assert.Equal(t, []string{"18:00", "19:00", "20:00", "21:00", "22:00", "23:00", "00:00", "01:00", "02:00"}, body.Slots)

	w, _ = doJSON(t, r, http.MethodGet, "/diary/slots?date=2026-10-16&granularity=30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingSettingsValidation(t *testing.T) {
	r, _ := setupRouter(t)

	bad := []map[string]interface{}{
		{"business_hours": []map[string]interface{}{{"day": "Funday", "open": "09:00", "close": "17:00"}}},
		{"business_hours": []map[string]interface{}{{"day": "Monday", "open": "9am", "close": "17:00"}}},
		{"business_hours": []map[string]interface{}{{"day": "Monday", "closed": true}, {"day": "monday", "closed": true}}},
		{"blackout_dates": []string{"25-12-2026"}},
	}
	for _, body := range bad {
		w, _ := doJSON(t, r, http.MethodPut, "/settings/booking", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}

	w, env := doJSON(t, r, http.MethodPut, "/settings/booking", map[string]interface{}{
		"business_hours": []map[string]interface{}{{"day": "sunday", "closed": true}},
		"blackout_dates": []string{"2026-12-25", "2026-12-25"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var saved models.BookingSettings
	decode(t, env.Data, &saved)
	assert.Equal(t, "Sunday", saved.BusinessHours[0].Day)
	assert.Equal(t, []string{"2026-12-25"}, saved.BlackoutDates)
}

func TestCatalogEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/booking-types", map[string]interface{}{
		"name": "Dinner", "color": "ABC", "default_duration": 2, "duration_unit": "hours",
		"metadata": map[string]interface{}{"icon": "moon"},
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var bt models.BookingType
	decode(t, env.Data, &bt)
	assert.Equal(t, "#aabbcc", bt.Color)
	assert.Equal(t, 120, bt.DefaultDuration)
	assert.JSONEq(t, `{"icon":"moon"}`, string(bt.Metadata))

	w, env = doJSON(t, r, http.MethodPost, "/booking-statuses", map[string]interface{}{"name": "Confirmed", "color": "not-a-color"})
	require.Equal(t, http.StatusCreated, w.Code)
	var st models.BookingStatus
	decode(t, env.Data, &st)
	assert.Equal(t, models.DefaultColor, st.Color)

	w, _ = doJSON(t, r, http.MethodPost, "/booking-tags", map[string]interface{}{"name": "VIP", "metadata": []int{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/booking-tags", map[string]interface{}{"name": "VIP", "color": "#FF0000"})
	assert.Equal(t, http.StatusCreated, w.Code)

	_, env = doJSON(t, r, http.MethodGet, "/booking-tags", nil)
	var tags []models.BookingTag
	decode(t, env.Data, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "#ff0000", tags[0].Color)

	w, _ = doJSON(t, r, http.MethodDelete, "/booking-types/"+bt.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/booking-types/"+bt.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	r, db := setupRouter(t)
	require.NoError(t, db.Create(&models.Notification{Title: "a", Message: "first", BookingID: "b1"}).Error)
	require.NoError(t, db.Create(&models.Notification{Title: "b", Message: "second"}).Error)

	_, env := doJSON(t, r, http.MethodGet, "/notifications?booking_id=b1", nil)
	var notes []models.Notification
	decode(t, env.Data, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "first", notes[0].Message)

	w, _ := doJSON(t, r, http.MethodDelete, "/notifications/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/notifications/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/notifications/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
