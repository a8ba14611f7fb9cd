package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/controllers"
	"github.com/yeremiapane/restaurant-diary/live"
	"github.com/yeremiapane/restaurant-diary/middlewares"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/services"
	"gorm.io/gorm"
)

type Options struct {
	CORSOrigins     []string
	RateLimit       float64
	RateBurst       int
	SlotGranularity int
}

func SetupRouter(db *gorm.DB, diarySvc *services.DiaryService, hub *live.Hub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())
	if opts.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimit, opts.RateBurst).RateLimit())
	}

	store := repository.NewGormStore(db)
	bookingCtrl := controllers.NewBookingController(db, diarySvc)
	tableCtrl := controllers.NewTableController(db)
	diaryCtrl := controllers.NewDiaryController(diarySvc, hub, opts.SlotGranularity)
	catalogCtrl := controllers.NewCatalogController(db)
	settingsCtrl := controllers.NewSettingsController(store)
	notifCtrl := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      DIARY
	// ----------------------------------------------------------------
	r.GET("/diary", diaryCtrl.GetLayout)
	r.GET("/diary/slots", diaryCtrl.GetSlots)
	r.GET("/diary/ws", diaryCtrl.DiaryWS)

	// ----------------------------------------------------------------
	//                      BOOKINGS
	// ----------------------------------------------------------------
	r.GET("/bookings", bookingCtrl.GetAllBookings)
	r.POST("/bookings", bookingCtrl.CreateBooking)
	r.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	r.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	r.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)
	r.PATCH("/bookings/:booking_id/table", bookingCtrl.ReassignTable)
	r.GET("/bookings/:booking_id/tracking", bookingCtrl.GetTracking)
	r.PATCH("/bookings/:booking_id/tracking", bookingCtrl.UpdateTracking)
	r.PATCH("/bookings/:booking_id/status", bookingCtrl.SetStatus)

	// ----------------------------------------------------------------
	//                      TABLES
	// ----------------------------------------------------------------
	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	r.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// ----------------------------------------------------------------
	//                      CATALOGS & SETTINGS
	// ----------------------------------------------------------------
	r.GET("/booking-types", catalogCtrl.GetBookingTypes)
	r.POST("/booking-types", catalogCtrl.CreateBookingType)
	r.DELETE("/booking-types/:id", catalogCtrl.DeleteBookingType)
	r.GET("/booking-statuses", catalogCtrl.GetBookingStatuses)
	r.POST("/booking-statuses", catalogCtrl.CreateBookingStatus)
	r.DELETE("/booking-statuses/:id", catalogCtrl.DeleteBookingStatus)
	r.GET("/booking-tags", catalogCtrl.GetBookingTags)
	r.POST("/booking-tags", catalogCtrl.CreateBookingTag)
	r.DELETE("/booking-tags/:id", catalogCtrl.DeleteBookingTag)

	r.GET("/settings/booking", settingsCtrl.GetBookingSettings)
	r.PUT("/settings/booking", settingsCtrl.UpdateBookingSettings)

	r.GET("/notifications", notifCtrl.GetAllNotifications)
	r.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)

	return r
}
