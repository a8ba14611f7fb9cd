package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/live"
	"github.com/yeremiapane/restaurant-diary/services"
	"github.com/yeremiapane/restaurant-diary/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type DiaryController struct {
	Diary       *services.DiaryService
	Hub         *live.Hub
	Granularity int
}

func NewDiaryController(diarySvc *services.DiaryService, hub *live.Hub, granularity int) *DiaryController {
	return &DiaryController{Diary: diarySvc, Hub: hub, Granularity: granularity}
}

func dateParam(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if !validDate(date) {
		respondServiceError(c, errInvalidDate)
		return "", false
	}
	return date, true
}

// GetLayout -> GET /diary?date=YYYY-MM-DD
func (dc *DiaryController) GetLayout(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	layout, err := dc.Diary.Layout(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Diary layout", layout)
}

// GetSlots -> GET /diary/slots?date=&granularity=15|60
func (dc *DiaryController) GetSlots(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	granularity := dc.Granularity
	if raw := c.Query("granularity"); raw != "" {
		g, err := strconv.Atoi(raw)
		if err != nil || (g != diary.GranularityHour && g != diary.GranularityQuarter) {
			utils.RespondError(c, http.StatusBadRequest, invalid("granularity must be 15 or 60"))
			return
		}
		granularity = g
	}

	slots, err := dc.Diary.Slots(c.Request.Context(), date, granularity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Time slots", gin.H{
		"date":        date,
		"granularity": granularity,
		"slots":       slots,
	})
}

// DiaryWS -> GET /diary/ws?date= subscribes to live diary changes
func (dc *DiaryController) DiaryWS(c *gin.Context) {
	date := c.Query("date")
	if date != "" && !validDate(date) {
		respondServiceError(c, errInvalidDate)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	dc.Hub.Register(ws, date)
	utils.InfoLogger.Printf("Diary subscriber connected (date=%q)", date)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	dc.Hub.Unregister(ws)
}
