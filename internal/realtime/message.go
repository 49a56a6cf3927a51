package realtime

import "encoding/json"

// Message is the envelope exchanged over the socket channel. Payload stays
// raw: relayed events are re-emitted byte for byte.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound event names, kept from the original socket surface.
const (
	EventNewOrder              = "/sockets/orders/newOrder"
	EventDoneOrder             = "/sockets/orders/doneOrder"
	EventChangeDoneOrderDetail = "/sockets/order-details/changeDoneOrderDetail"
	EventMenuItemUpdate        = "/sockets/menu-items/update"
)

// Outbound (renamed) event names.
const (
	EventSendNewOrder              = "/sockets/orders/sendNewOrder"
	EventSendDoneOrder             = "/sockets/orders/sendDoneOrder"
	EventSendChangeDoneOrderDetail = "/sockets/order-details/sendChangeDoneOrderDetail"
	EventSendMenuItemUpdate        = "/sockets/menu-items/sendUpdate"
)
