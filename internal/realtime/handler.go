package realtime

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"comanda/internal/domain"
)

// DetailDoneSetter persists the item-level done flag coming from kitchen
// displays.
type DetailDoneSetter interface {
	SetDetailDone(ctx context.Context, id uint, done bool) error
}

// AvailabilityUpdater persists menu item availability changes before they are
// re-broadcast.
type AvailabilityUpdater interface {
	UpdateDisponibilidad(ctx context.Context, id int, disponible bool) (*domain.MenuItem, error)
}

// Handler upgrades HTTP requests to socket connections. The tenant id comes
// from the idcomercial handshake header and names the room the connection
// joins.
type Handler struct {
	hub       *Hub
	orders    DetailDoneSetter
	menuItems AvailabilityUpdater
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(hub *Hub, orders DetailDoneSetter, menuItems AvailabilityUpdater, logger *zap.Logger) *Handler {
	return &Handler{
		hub:       hub,
		orders:    orders,
		menuItems: menuItems,
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room := r.Header.Get("idcomercial")
	if room == "" {
		http.Error(w, "idcomercial header is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("socket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Join(room, conn)
	defer func() {
		h.hub.Leave(room, conn)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn("invalid socket message", zap.String("room", room), zap.Error(err))
			continue
		}

		h.dispatch(r.Context(), room, msg)
	}
}

func (h *Handler) dispatch(ctx context.Context, room string, msg Message) {
	switch msg.Event {
	case EventNewOrder:
		// Pure relay: no validation, no persistence.
		h.hub.Broadcast(room, EventSendNewOrder, msg.Payload)

	case EventDoneOrder:
		h.hub.Broadcast(room, EventSendDoneOrder, msg.Payload)

	case EventChangeDoneOrderDetail:
		var p struct {
			IDOrderDetail uint `json:"idOrderDetail"`
			Done          bool `json:"done"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			h.logger.Warn("invalid changeDoneOrderDetail payload", zap.String("room", room), zap.Error(err))
			return
		}
		if err := h.orders.SetDetailDone(ctx, p.IDOrderDetail, p.Done); err != nil {
			h.logger.Error("persisting order detail done flag failed", zap.Uint("idOrderDetail", p.IDOrderDetail), zap.Error(err))
			return
		}
		h.hub.Broadcast(room, EventSendChangeDoneOrderDetail, msg.Payload)

	case EventMenuItemUpdate:
		var p struct {
			IDMenuItem     int  `json:"id_menu_item"`
			Disponibilidad bool `json:"disponibilidad"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			h.logger.Warn("invalid menu item update payload", zap.String("room", room), zap.Error(err))
			return
		}
		item, err := h.menuItems.UpdateDisponibilidad(ctx, p.IDMenuItem, p.Disponibilidad)
		if err != nil {
			h.logger.Error("persisting menu item availability failed", zap.Int("id_menu_item", p.IDMenuItem), zap.Error(err))
			return
		}
		payload, err := json.Marshal(item)
		if err != nil {
			h.logger.Error("marshaling menu item", zap.Error(err))
			return
		}
		h.hub.Broadcast(room, EventSendMenuItemUpdate, payload)

	default:
		h.logger.Debug("unknown socket event", zap.String("event", msg.Event), zap.String("room", room))
	}
}
