package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogController serves booking types, statuses and tags.
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

type catalogRequest struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" binding:"required"`
	Color           string          `json:"color"`
	DefaultDuration *float64        `json:"default_duration"`
	DurationUnit    string          `json:"duration_unit"`
	Metadata        json.RawMessage `json:"metadata"`
}

func (req catalogRequest) metadata() (datatypes.JSON, error) {
	raw := strings.TrimSpace(string(req.Metadata))
	if raw == "" || raw == "null" {
		return datatypes.JSON("{}"), nil
	}
	if !strings.HasPrefix(raw, "{") || !json.Valid([]byte(raw)) {
		return nil, invalid("metadata must be a JSON object")
	}
	return datatypes.JSON(raw), nil
}

func bindCatalog(c *gin.Context) (catalogRequest, datatypes.JSON, bool) {
	var req catalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return req, nil, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, invalid("name is required"))
		return req, nil, false
	}
	meta, err := req.metadata()
	if err != nil {
		respondServiceError(c, err)
		return req, nil, false
	}
	return req, meta, true
}

func (cc *CatalogController) list(c *gin.Context, dest interface{}, message string) {
	if err := cc.DB.Order("name ASC").Find(dest).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, dest)
}

func (cc *CatalogController) create(c *gin.Context, item interface{}, message string) {
	if err := cc.DB.Create(item).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, message, item)
}

func (cc *CatalogController) remove(c *gin.Context, model interface{}, message string) {
	id := c.Param("id")
	// Load first so the change log sees which row went away.
	if err := cc.DB.First(model, "id = ?", id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := cc.DB.Delete(model).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("%s: %s", message, id)
	utils.RespondJSON(c, http.StatusOK, message, gin.H{"id": id})
}

func (cc *CatalogController) GetBookingTypes(c *gin.Context) {
	var types []models.BookingType
	cc.list(c, &types, "List of booking types")
}

func (cc *CatalogController) CreateBookingType(c *gin.Context) {
	req, meta, ok := bindCatalog(c)
	if !ok {
		return
	}
	item := models.BookingType{ID: req.ID, Name: req.Name, Color: diary.NormalizeColor(req.Color), Metadata: meta}
	if req.DefaultDuration != nil {
		minutes, err := durationMinutes(*req.DefaultDuration, req.DurationUnit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		item.DefaultDuration = minutes
	}
	cc.create(c, &item, "Booking type created")
}

func (cc *CatalogController) DeleteBookingType(c *gin.Context) {
	cc.remove(c, &models.BookingType{}, "Booking type deleted")
}

func (cc *CatalogController) GetBookingStatuses(c *gin.Context) {
	var statuses []models.BookingStatus
	cc.list(c, &statuses, "List of booking statuses")
}

func (cc *CatalogController) CreateBookingStatus(c *gin.Context) {
	req, meta, ok := bindCatalog(c)
	if !ok {
		return
	}
	item := models.BookingStatus{ID: req.ID, Name: req.Name, Color: diary.NormalizeColor(req.Color), Metadata: meta}
	cc.create(c, &item, "Booking status created")
}

func (cc *CatalogController) DeleteBookingStatus(c *gin.Context) {
	cc.remove(c, &models.BookingStatus{}, "Booking status deleted")
}

func (cc *CatalogController) GetBookingTags(c *gin.Context) {
	var tags []models.BookingTag
	cc.list(c, &tags, "List of booking tags")
}

func (cc *CatalogController) CreateBookingTag(c *gin.Context) {
	req, meta, ok := bindCatalog(c)
	if !ok {
		return
	}
	item := models.BookingTag{ID: req.ID, Name: req.Name, Color: diary.NormalizeColor(req.Color), Metadata: meta}
	cc.create(c, &item, "Booking tag created")
}

func (cc *CatalogController) DeleteBookingTag(c *gin.Context) {
	cc.remove(c, &models.BookingTag{}, "Booking tag deleted")
}
