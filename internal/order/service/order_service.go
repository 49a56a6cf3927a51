package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"comanda/internal/domain"
)

type OrderRepository interface {
	FindUndoneByComercial(ctx context.Context, idComercial int) ([]domain.Order, error)
	FindDoneWithoutPaying(ctx context.Context, idComercial int) ([]domain.Order, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindHeaderByID(ctx context.Context, id uint) (*domain.Order, error)
	Insert(ctx context.Context, order *domain.Order) error
	UpdateHeader(ctx context.Context, id uint, values map[string]interface{}) error
}

type OrderDetailRepository interface {
	BulkInsert(ctx context.Context, details []domain.OrderDetail) error
	DeleteByOrderAndMenuItems(ctx context.Context, orderID uint, menuItemIDs []int) error
	UpdateByOrderAndMenuItem(ctx context.Context, orderID uint, menuItemID int, values map[string]interface{}) error
	SetDone(ctx context.Context, id uint, done bool) error
}

// HeaderPatch is the order-header part of an update request. Done is absent
// on purpose: the update flow toggles the stored flag instead of taking it
// from the payload.
type HeaderPatch struct {
	NombreCliente string
	FechaOrden    time.Time
	IDEmpleado    int
	IDComercial   int
	IDMesa        *int
	Pagado        *bool
}

// DetailEdit patches one line of an order, matched by menu item id. Nil
// fields are left untouched.
type DetailEdit struct {
	IDMenuItem int
	Cantidad   *int
	Importe    *float64
	Comentario *string
}

type OrderService struct {
	orders  OrderRepository
	details OrderDetailRepository
	logger  *zap.Logger
}

func NewOrderService(orders OrderRepository, details OrderDetailRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		details: details,
		logger:  logger,
	}
}

func (s *OrderService) ListUndone(ctx context.Context, idComercial int) ([]domain.Order, error) {
	return s.orders.FindUndoneByComercial(ctx, idComercial)
}

func (s *OrderService) ListWithoutPaying(ctx context.Context, idComercial int) ([]domain.Order, error) {
	return s.orders.FindDoneWithoutPaying(ctx, idComercial)
}

func (s *OrderService) Get(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// Create inserts the order header first to obtain its generated id, then
// bulk-inserts the line items carrying that id, and returns the re-read
// fully joined order.
func (s *OrderService) Create(ctx context.Context, header domain.Order, details []domain.OrderDetail) (*domain.Order, error) {
	if err := s.orders.Insert(ctx, &header); err != nil {
		return nil, err
	}

	for i := range details {
		details[i].IDOrden = header.IDOrden
	}

	if err := s.details.BulkInsert(ctx, details); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Uint("idOrden", header.IDOrden),
		zap.Int("idComercial", header.IDComercial),
		zap.Int("detailCount", len(details)))

	return s.orders.FindByID(ctx, header.IDOrden)
}

// Update applies the header patch with done toggled from its stored value,
// then runs the three line-item instructions sequentially: insert
// newMenuItems, delete itemsMenuRemove, edit itemsMenuEdit (each edited row
// forced back to done=false). The steps are not wrapped in a transaction; a
// failure partway leaves the completed steps applied.
func (s *OrderService) Update(
	ctx context.Context,
	id uint,
	patch HeaderPatch,
	newItems []domain.OrderDetail,
	edits []DetailEdit,
	removes []int,
) (*domain.Order, error) {
	current, err := s.orders.FindHeaderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.ToggleDone()

	values := map[string]interface{}{
		"nombreCliente": patch.NombreCliente,
		"fechaOrden":    patch.FechaOrden,
		"idEmpleado":    patch.IDEmpleado,
		"idComercial":   patch.IDComercial,
		"done":          current.Done,
	}
	if patch.IDMesa != nil {
		values["idMesa"] = *patch.IDMesa
	}
	if patch.Pagado != nil {
		values["pagado"] = *patch.Pagado
	}

	if err := s.orders.UpdateHeader(ctx, id, values); err != nil {
		return nil, err
	}

	for i := range newItems {
		newItems[i].IDOrden = id
	}
	if err := s.details.BulkInsert(ctx, newItems); err != nil {
		return nil, err
	}

	if err := s.details.DeleteByOrderAndMenuItems(ctx, id, removes); err != nil {
		return nil, err
	}

	for _, edit := range edits {
		editValues := map[string]interface{}{"done": false}
		if edit.Cantidad != nil {
			editValues["cantidad"] = *edit.Cantidad
		}
		if edit.Importe != nil {
			editValues["importe"] = *edit.Importe
		}
		if edit.Comentario != nil {
			editValues["comentario"] = *edit.Comentario
		}

		if err := s.details.UpdateByOrderAndMenuItem(ctx, id, edit.IDMenuItem, editValues); err != nil {
			return nil, err
		}
	}

	s.logger.Info("order updated",
		zap.Uint("idOrden", id),
		zap.Bool("done", current.Done),
		zap.Int("inserted", len(newItems)),
		zap.Int("removed", len(removes)),
		zap.Int("edited", len(edits)))

	return s.orders.FindByID(ctx, id)
}

// Delete acknowledges the request without removing anything. Deletion has
// always been a no-op in this flow; callers rely on the success envelope.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if _, err := s.orders.FindHeaderByID(ctx, id); err != nil {
		return err
	}

	s.logger.Warn("order delete requested, nothing removed", zap.Uint("idOrden", id))
	return nil
}

// SetDetailDone flips a single line item's completion flag. Driven by the
// kitchen display over the socket channel.
func (s *OrderService) SetDetailDone(ctx context.Context, id uint, done bool) error {
	return s.details.SetDone(ctx, id, done)
}
