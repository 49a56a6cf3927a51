package domain

// OrderDetail is a single line item of an order: one menu item, a quantity
// and the computed amount. Item-level done is independent of the order-level
// flag; editing a line always resets it to false.
type OrderDetail struct {
	IDOrderDetail uint    `json:"idOrderDetail" gorm:"column:idOrderDetail;primaryKey;autoIncrement"`
	IDOrden       uint    `json:"idOrden" gorm:"column:idOrden;not null;index"`
	IDMenuItem    int     `json:"id_menu_item" gorm:"column:id_menu_item;not null;index"`
	Cantidad      int     `json:"cantidad" gorm:"column:cantidad;not null"`
	Importe       float64 `json:"importe" gorm:"column:importe;not null"`
	Comentario    string  `json:"comentario" gorm:"column:comentario"`
	Done          bool    `json:"done" gorm:"column:done"`

	MenuItem *MenuItem `json:"menuItem,omitempty" gorm:"foreignKey:IDMenuItem;references:IDMenuItem"`
}

func (OrderDetail) TableName() string {
	return "orderDetails"
}
