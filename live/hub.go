package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-diary/utils"
)

// Event types
const (
	EventBookingUpdate     = "booking_update"
	EventBookingDelete     = "booking_delete"
	EventTableUpdate       = "table_update"
	EventLayoutUpdate      = "layout_update"
	EventBookingReassigned = "booking_reassigned"
	EventReassignReverted  = "reassign_reverted"
	EventNotification      = "notification"
)

type Message struct {
	Event string      `json:"event"`
	Date  string      `json:"date,omitempty"`
	Data  interface{} `json:"data"`
}

// Hub holds the diary's websocket clients. Each client watches one date, or
// every date when it subscribed without one.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> date
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, date string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = date
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every client watching msg.Date. Messages without a
// date go to everyone.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent := 0
	for conn, date := range h.clients {
		if msg.Date != "" && date != "" && date != msg.Date {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending %s to client: %v", msg.Event, err)
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		sent++
	}
	utils.InfoLogger.Debugf("Broadcast %s (%s) to %d clients", msg.Event, msg.Date, sent)
}
