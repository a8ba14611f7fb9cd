package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-diary/cache"
	"github.com/yeremiapane/restaurant-diary/live"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/router"
	"github.com/yeremiapane/restaurant-diary/services"
)

// setupTestDB menggunakan SQLite in-memory, satu database per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Table{},
		&models.Booking{},
		&models.BookingType{},
		&models.BookingStatus{},
		&models.BookingTag{},
		&models.DaySchedule{},
		&models.BookingSetting{},
		&models.Notification{},
		&models.DBChange{},
	))
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	hub := live.NewHub()
	diarySvc := services.NewDiaryService(repository.NewGormStore(db), cache.NewMemoryCache(), hub)
	r := router.SetupRouter(db, diarySvc, hub, router.Options{
		CORSOrigins:     []string{"*"},
		SlotGranularity: 60,
	})
	return r, db
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}
