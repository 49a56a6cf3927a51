package dto

// CreateOrderRequest carries the order header plus its initial line items.
// Pointer fields distinguish "absent" from zero values during validation.
type CreateOrderRequest struct {
	NombreCliente string               `json:"nombreCliente"`
	FechaOrden    string               `json:"fechaOrden"`
	IDEmpleado    *int                 `json:"idEmpleado"`
	IDComercial   *int                 `json:"idComercial"`
	IDMesa        *int                 `json:"idMesa"`
	Pagado        bool                 `json:"pagado"`
	OrderDetails  []OrderDetailRequest `json:"order_details"`
}

type OrderDetailRequest struct {
	IDMenuItem *int     `json:"id_menu_item"`
	Cantidad   *int     `json:"cantidad"`
	Importe    *float64 `json:"importe"`
	Comentario *string  `json:"comentario"`
}

// UpdateOrderRequest patches the order header and carries three independent
// line-item instructions: rows to insert, rows to edit (matched by menu item
// id within the order) and menu item ids to remove.
type UpdateOrderRequest struct {
	NombreCliente   string               `json:"nombreCliente"`
	FechaOrden      string               `json:"fechaOrden"`
	IDEmpleado      *int                 `json:"idEmpleado"`
	IDComercial     *int                 `json:"idComercial"`
	IDMesa          *int                 `json:"idMesa"`
	Pagado          *bool                `json:"pagado"`
	NewMenuItems    []OrderDetailRequest `json:"newMenuItems"`
	ItemsMenuEdit   []OrderDetailEdit    `json:"itemsMenuEdit"`
	ItemsMenuRemove []int                `json:"itemsMenuRemove"`
}

type OrderDetailEdit struct {
	IDMenuItem int      `json:"id_menu_item"`
	Cantidad   *int     `json:"cantidad"`
	Importe    *float64 `json:"importe"`
	Comentario *string  `json:"comentario"`
}
