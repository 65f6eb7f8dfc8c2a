package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/foodbridge/donation-app/models"
)

// Event types pushed to connected dashboards.
const (
	EventDonationUpdate  = "donation_update"
	EventCourierLocation = "courier_location"
	EventNotification    = "notification"
	EventStatsUpdate     = "stats_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client (donor, ngo, courier,
// admin) keyed by connection.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastDonationUpdate pushes a changed donation to every client.
func BroadcastDonationUpdate(donation *models.Donation) {
	broadcast(Message{
		Event: EventDonationUpdate,
		Data:  donation,
	})
}

// BroadcastCourierLocation pushes an en-route coordinate update.
func BroadcastCourierLocation(donationID string, coords models.Coordinates) {
	broadcast(Message{
		Event: EventCourierLocation,
		Data: map[string]interface{}{
			"donation_id": donationID,
			"coordinates": coords,
		},
	})
}

// BroadcastNotification pushes a freshly emitted notification.
func BroadcastNotification(notification models.Notification) {
	broadcast(Message{
		Event: EventNotification,
		Data:  notification,
	})
}

// BroadcastStats pushes a recomputed analytics snapshot.
func BroadcastStats(snapshot *models.AnalyticsSnapshot) {
	broadcast(Message{
		Event: EventStatsUpdate,
		Data:  snapshot,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
