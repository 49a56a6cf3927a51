package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comanda/internal/domain"
	apperrors "comanda/internal/errors"
)

type fakeOrderRepo struct {
	headers map[uint]*domain.Order
	nextID  uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{headers: make(map[uint]*domain.Order), nextID: 1}
}

func (f *fakeOrderRepo) FindUndoneByComercial(_ context.Context, idComercial int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.headers {
		if !o.Done && o.IDComercial == idComercial {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindDoneWithoutPaying(_ context.Context, idComercial int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.headers {
		if o.Done && !o.Pagado && o.IDComercial == idComercial {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*domain.Order, error) {
	return f.find(id)
}

func (f *fakeOrderRepo) FindHeaderByID(_ context.Context, id uint) (*domain.Order, error) {
	return f.find(id)
}

func (f *fakeOrderRepo) find(id uint) (*domain.Order, error) {
	o, ok := f.headers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	order.IDOrden = f.nextID
	f.nextID++
	cp := *order
	f.headers[order.IDOrden] = &cp
	return nil
}

func (f *fakeOrderRepo) UpdateHeader(_ context.Context, id uint, values map[string]interface{}) error {
	o, ok := f.headers[id]
	if !ok {
		return apperrors.NewNotFoundError("order not found")
	}
	if v, ok := values["done"]; ok {
		o.Done = v.(bool)
	}
	if v, ok := values["nombreCliente"]; ok {
		o.NombreCliente = v.(string)
	}
	if v, ok := values["pagado"]; ok {
		o.Pagado = v.(bool)
	}
	return nil
}

type fakeDetailRepo struct {
	details       []domain.OrderDetail
	bulkInsertErr error
	deleteCalls   int
}

func (f *fakeDetailRepo) BulkInsert(_ context.Context, details []domain.OrderDetail) error {
	if f.bulkInsertErr != nil {
		return f.bulkInsertErr
	}
	f.details = append(f.details, details...)
	return nil
}

func (f *fakeDetailRepo) DeleteByOrderAndMenuItems(_ context.Context, orderID uint, menuItemIDs []int) error {
	f.deleteCalls++
	if len(menuItemIDs) == 0 {
		return nil
	}
	idSet := make(map[int]bool, len(menuItemIDs))
	for _, id := range menuItemIDs {
		idSet[id] = true
	}
	kept := f.details[:0]
	for _, d := range f.details {
		if d.IDOrden == orderID && idSet[d.IDMenuItem] {
			continue
		}
		kept = append(kept, d)
	}
	f.details = kept
	return nil
}

func (f *fakeDetailRepo) UpdateByOrderAndMenuItem(_ context.Context, orderID uint, menuItemID int, values map[string]interface{}) error {
	for i := range f.details {
		if f.details[i].IDOrden != orderID || f.details[i].IDMenuItem != menuItemID {
			continue
		}
		if v, ok := values["cantidad"]; ok {
			f.details[i].Cantidad = v.(int)
		}
		if v, ok := values["importe"]; ok {
			f.details[i].Importe = v.(float64)
		}
		if v, ok := values["comentario"]; ok {
			f.details[i].Comentario = v.(string)
		}
		if v, ok := values["done"]; ok {
			f.details[i].Done = v.(bool)
		}
	}
	return nil
}

func (f *fakeDetailRepo) SetDone(_ context.Context, id uint, done bool) error {
	for i := range f.details {
		if f.details[i].IDOrderDetail == id {
			f.details[i].Done = done
			return nil
		}
	}
	return apperrors.NewNotFoundError("order detail not found")
}

func newService(orders *fakeOrderRepo, details *fakeDetailRepo) *OrderService {
	return NewOrderService(orders, details, zap.NewNop())
}

func seedOrder(orders *fakeOrderRepo, idComercial int, done bool) uint {
	order := &domain.Order{NombreCliente: "Mesa 4", IDComercial: idComercial, IDEmpleado: 1, Done: done}
	orders.Insert(context.Background(), order)
	orders.headers[order.IDOrden].Done = done
	return order.IDOrden
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func basePatch() HeaderPatch {
	return HeaderPatch{
		NombreCliente: "Mesa 4",
		FechaOrden:    time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC),
		IDEmpleado:    1,
		IDComercial:   1,
	}
}

func TestOrderService_Create_AttachesGeneratedID(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{}
	svc := newService(orders, details)

	lines := []domain.OrderDetail{
		{IDMenuItem: 3, Cantidad: 2, Importe: 18.0},
		{IDMenuItem: 5, Cantidad: 1, Importe: 7.5},
		{IDMenuItem: 9, Cantidad: 4, Importe: 30.0},
	}

	created, err := svc.Create(context.Background(), domain.Order{NombreCliente: "Ana", IDComercial: 1, IDEmpleado: 2}, lines)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Len(t, details.details, 3)
	for _, d := range details.details {
		assert.Equal(t, created.IDOrden, d.IDOrden)
	}
}

func TestOrderService_Update_TogglesDoneOncePerCall(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{}
	svc := newService(orders, details)

	id := seedOrder(orders, 1, false)

	updated, err := svc.Update(context.Background(), id, basePatch(), nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	// A second identical call flips it back, regardless of payload.
	updated, err = svc.Update(context.Background(), id, basePatch(), nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, updated.Done)
}

func TestOrderService_Update_RemovesOnlyMatchingDetails(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{}
	svc := newService(orders, details)

	id := seedOrder(orders, 1, false)
	otherID := seedOrder(orders, 1, false)

	details.details = []domain.OrderDetail{
		{IDOrderDetail: 1, IDOrden: id, IDMenuItem: 5},
		{IDOrderDetail: 2, IDOrden: id, IDMenuItem: 7},
		{IDOrderDetail: 3, IDOrden: otherID, IDMenuItem: 5},
	}

	_, err := svc.Update(context.Background(), id, basePatch(), nil, nil, []int{5})
	require.NoError(t, err)

	require.Len(t, details.details, 2)
	assert.Equal(t, uint(2), details.details[0].IDOrderDetail)
	// The other order's row with the same menu item survives.
	assert.Equal(t, uint(3), details.details[1].IDOrderDetail)
}

func TestOrderService_Update_EditForcesDoneFalse(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{}
	svc := newService(orders, details)

	id := seedOrder(orders, 1, false)
	details.details = []domain.OrderDetail{
		{IDOrderDetail: 1, IDOrden: id, IDMenuItem: 3, Cantidad: 1, Done: true},
	}

	edits := []DetailEdit{{IDMenuItem: 3, Cantidad: intPtr(2)}}
	_, err := svc.Update(context.Background(), id, basePatch(), nil, edits, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, details.details[0].Cantidad)
	assert.False(t, details.details[0].Done)
}

func TestOrderService_Update_PagadoOnlyWhenPresent(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{}
	svc := newService(orders, details)

	id := seedOrder(orders, 1, false)
	orders.headers[id].Pagado = true

	// Absent pagado leaves the stored value alone.
	updated, err := svc.Update(context.Background(), id, basePatch(), nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, updated.Pagado)

	patch := basePatch()
	patch.Pagado = boolPtr(false)
	updated, err = svc.Update(context.Background(), id, patch, nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, updated.Pagado)
}

func TestOrderService_Update_NoRollbackAfterPartialFailure(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{bulkInsertErr: errors.New("duplicate entry")}
	svc := newService(orders, details)

	id := seedOrder(orders, 1, false)

	newItems := []domain.OrderDetail{{IDMenuItem: 4, Cantidad: 1}}
	_, err := svc.Update(context.Background(), id, basePatch(), newItems, nil, []int{9})
	require.Error(t, err)

	// Header toggle already applied, delete step never reached.
	assert.True(t, orders.headers[id].Done)
	assert.Zero(t, details.deleteCalls)
}

func TestOrderService_Update_NotFound(t *testing.T) {
	svc := newService(newFakeOrderRepo(), &fakeDetailRepo{})

	_, err := svc.Update(context.Background(), 99, basePatch(), nil, nil, nil)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderService_Delete_IsNoOp(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{}
	svc := newService(orders, details)

	id := seedOrder(orders, 1, false)
	details.details = []domain.OrderDetail{{IDOrderDetail: 1, IDOrden: id, IDMenuItem: 2}}

	require.NoError(t, svc.Delete(context.Background(), id))

	// Nothing is removed.
	_, exists := orders.headers[id]
	assert.True(t, exists)
	assert.Len(t, details.details, 1)
}

func TestOrderService_Delete_UnknownOrder(t *testing.T) {
	svc := newService(newFakeOrderRepo(), &fakeDetailRepo{})

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderService_SetDetailDone(t *testing.T) {
	orders := newFakeOrderRepo()
	details := &fakeDetailRepo{details: []domain.OrderDetail{{IDOrderDetail: 7, Done: false}}}
	svc := newService(orders, details)

	require.NoError(t, svc.SetDetailDone(context.Background(), 7, true))
	assert.True(t, details.details[0].Done)

	err := svc.SetDetailDone(context.Background(), 8, true)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
