package tracking

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/food-delivery-app/models"
)

// Event types
const (
	EventOrderCreated     = "order_created"
	EventPaymentConfirmed = "payment_confirmed"
	EventPartnerAssigned  = "partner_assigned"
	EventStatusUpdate     = "status_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected tracking client (customer/admin dashboards)
// and fans order lifecycle events out to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var trackingHub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role
func RegisterClient(conn *websocket.Conn, role string) {
	trackingHub.mutex.Lock()
	defer trackingHub.mutex.Unlock()
	trackingHub.clients[conn] = role
}

// UnregisterClient drops a connection
func UnregisterClient(conn *websocket.Conn) {
	trackingHub.mutex.Lock()
	defer trackingHub.mutex.Unlock()
	delete(trackingHub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated -> a new order entered the pipeline
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

// BroadcastPaymentConfirmed -> payment verified for an order
func BroadcastPaymentConfirmed(orderID uint, paymentID string) {
	broadcast(Message{
		Event: EventPaymentConfirmed,
		Data: map[string]interface{}{
			"order_id":   orderID,
			"payment_id": paymentID,
		},
	})
}

// BroadcastPartnerAssigned -> a delivery partner reserved an order
func BroadcastPartnerAssigned(orderID uint, partner models.DeliveryPartner) {
	broadcast(Message{
		Event: EventPartnerAssigned,
		Data: map[string]interface{}{
			"order_id": orderID,
			"partner":  partner,
		},
	})
}

// BroadcastStatusUpdate -> partner moved an order through the state machine
func BroadcastStatusUpdate(order models.Order) {
	broadcast(Message{
		Event: EventStatusUpdate,
		Data:  order,
	})
}

func broadcast(msg Message) {
	trackingHub.mutex.Lock()
	defer trackingHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling tracking message: %v", err)
		return
	}

	for conn := range trackingHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending tracking message: %v", err)
			continue
		}
	}
}
