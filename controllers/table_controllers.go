package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

type tableRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	Order    *int    `json:"order"`
	Section  *string `json:"section"`
	Active   *bool   `json:"active"`
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	table := models.Table{ID: req.ID, Name: strings.TrimSpace(*req.Name), Capacity: 2, Active: true}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Order != nil {
		table.Order = *req.Order
	}
	if req.Section != nil {
		table.Section = *req.Section
	}
	if table.Capacity < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be at least 1"))
		return
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	// Active has a database default of true, so an inactive table needs a second write.
	if req.Active != nil && !*req.Active {
		if err := tc.DB.Model(&table).Update("active", false).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		table.Active = false
	}

	utils.InfoLogger.Printf("New table created: %s (%s)", table.Name, table.ID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja dalam urutan diary
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	q := tc.DB.Order("sort_order ASC").Order("created_at ASC")
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&tables).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("name cannot be empty"))
			return
		}
		updates["name"] = name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be at least 1"))
			return
		}
		updates["capacity"] = *req.Capacity
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}
	if req.Section != nil {
		updates["section"] = *req.Section
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	if err := tc.DB.Model(&table).Updates(updates).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := tc.DB.First(&table, "id = ?", table.ID).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Table %s updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := tc.DB.Delete(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Table %s deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}
