package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

// Event types
const (
	EventMenuUpdate  = "menu_update"
	EventOrderUpdate = "order_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung koneksi client dashboard/POS dan channel untuk broadcast.
// Satu koneksi per session: register ulang menutup koneksi lama dulu
// supaya update tidak terkirim dobel.
type Hub struct {
	clients map[uint]*websocket.Conn // session (user id) -> conn
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[uint]*websocket.Conn),
}

// RegisterClient -> menambahkan connection ke set untuk satu session
func RegisterClient(sessionID uint, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if old, ok := hub.clients[sessionID]; ok {
		old.Close()
	}
	hub.clients[sessionID] = conn
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(sessionID uint, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	// Jangan tutup koneksi pengganti milik session yang sama
	if cur, ok := hub.clients[sessionID]; ok && cur == conn {
		delete(hub.clients, sessionID)
	}
	conn.Close()
}

// BroadcastMenuUpdate -> menyiarkan snapshot katalog ke semua client
func BroadcastMenuUpdate(items []models.Menu) {
	broadcast(Message{
		Event: EventMenuUpdate,
		Data:  items,
	})
}

// BroadcastOrderUpdate -> menyiarkan perubahan order (baru atau transisi status)
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("events: marshal %s failed: %v", msg.Event, err)
		}
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for sessionID, conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(hub.clients, sessionID)
		}
	}
}
