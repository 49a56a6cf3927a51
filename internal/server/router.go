package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"comanda/internal/menuitem"
	ordercontroller "comanda/internal/order/controller"
	"comanda/internal/realtime"
	"comanda/internal/table"
)

func NewRouter(
	orders *ordercontroller.OrderController,
	tables *table.Controller,
	menuItems *menuitem.Controller,
	sockets *realtime.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Mount("/orders", orders.Routes())
	r.Mount("/tables", tables.Routes())
	r.Mount("/menu-items", menuItems.Routes())
	r.Handle("/ws", sockets)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
