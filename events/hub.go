package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prasetyawidi/table-order-app/models"
	"github.com/sirupsen/logrus"
)

// Event types
const (
	EventNewOrder           = "new_order"
	EventOrderUpdate        = "order_update"
	EventNotificationUpdate = "notification_update"
	EventStaffNotif         = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client console (admin, staff) dan melakukan broadcast
// best-effort: client yang gagal dikirimi hanya di-log, tidak menggagalkan
// operasi yang memicu event.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
	log     *logrus.Logger
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
	log:     logrus.New(),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount melaporkan jumlah listener yang sedang terhubung.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastNewOrder -> menyiarkan order baru beserta notification-nya.
func BroadcastNewOrder(notif models.Notification) {
	BroadcastMessage(Message{
		Event: EventNewOrder,
		Data:  notif,
	})
}

// BroadcastOrderUpdate -> menyiarkan perubahan status/payment sebuah order
func BroadcastOrderUpdate(order models.Order) {
	BroadcastMessage(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastNotificationUpdate -> perubahan read state notification
func BroadcastNotificationUpdate(data interface{}) {
	BroadcastMessage(Message{
		Event: EventNotificationUpdate,
		Data:  data,
	})
}

// BroadcastStaffNotification -> pesan teks bebas untuk staff
func BroadcastStaffNotification(message string) {
	BroadcastMessage(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// BroadcastMessage -> broadcast pesan umum ke semua client
func BroadcastMessage(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		hub.log.Errorf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			hub.log.Warnf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
