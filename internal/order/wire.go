package order

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"comanda/internal/order/controller"
	"comanda/internal/order/repository"
	"comanda/internal/order/service"
)

// NewModule wires the order stack. The menu-item and comercial checkers come
// from their own modules; the controller only needs their existence checks.
func NewModule(db *gorm.DB, menuItems controller.MenuItemChecker, comercials controller.ComercialChecker, logger *zap.Logger) (*controller.OrderController, *service.OrderService) {
	orderRepo := repository.NewGormOrderRepository(db)
	detailRepo := repository.NewGormOrderDetailRepository(db)

	svc := service.NewOrderService(orderRepo, detailRepo, logger)
	ctrl := controller.NewOrderController(svc, menuItems, comercials, logger)

	return ctrl, svc
}
