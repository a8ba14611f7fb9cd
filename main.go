package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-diary/cache"
	"github.com/yeremiapane/restaurant-diary/config"
	"github.com/yeremiapane/restaurant-diary/database"
	"github.com/yeremiapane/restaurant-diary/live"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/router"
	"github.com/yeremiapane/restaurant-diary/services"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	autoMigrate(db)

	if err := database.RegisterChangeLog(db, services.WatchedTables...); err != nil {
		utils.ErrorLogger.Fatalf("Failed to register change log: %v", err)
	}

	layoutCache := newLayoutCache(cfg)
	hub := live.NewHub()
	diarySvc := services.NewDiaryService(repository.NewGormStore(db), layoutCache, hub)

	monitor := services.NewChangeMonitor(db, layoutCache, hub, cfg.MonitorInterval)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, diarySvc, hub, router.Options{
		CORSOrigins:     cfg.CORSOrigins,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		SlotGranularity: cfg.SlotGranularity,
	})
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
}

// newLayoutCache prefers Redis when REDIS_URL is set and reachable.
func newLayoutCache(cfg config.Config) cache.LayoutCache {
	if cfg.RedisURL == "" {
		return cache.NewMemoryCache()
	}
	rc, err := cache.NewRedisCache(cfg.RedisURL, cfg.LayoutCacheTTL)
	if err != nil {
		utils.ErrorLogger.Errorf("Redis unavailable (%v), using in-memory layout cache", err)
		return cache.NewMemoryCache()
	}
	utils.InfoLogger.Println("Layout cache backed by Redis")
	return rc
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Table{},
		&models.Booking{},
		&models.BookingType{},
		&models.BookingStatus{},
		&models.BookingTag{},
		&models.DaySchedule{},
		&models.BookingSetting{},
		&models.Notification{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Rows written before selected_tables existed.
	if err := db.Exec("UPDATE bookings SET selected_tables = '[]' WHERE selected_tables IS NULL").Error; err != nil {
		utils.ErrorLogger.Errorf("Error updating null selected_tables: %v", err)
	}
}
