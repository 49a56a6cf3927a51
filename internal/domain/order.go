package domain

import (
	"time"

	"gorm.io/gorm"
)

// Order is the kitchen ticket header for a single table/customer. Wire names
// keep the original Spanish schema (idOrden, nombreCliente, pagado).
type Order struct {
	IDOrden       uint           `json:"idOrden" gorm:"column:idOrden;primaryKey;autoIncrement"`
	IDComercial   int            `json:"idComercial" gorm:"column:idComercial;not null;index"`
	IDEmpleado    int            `json:"idEmpleado" gorm:"column:idEmpleado;not null"`
	IDMesa        *int           `json:"idMesa" gorm:"column:idMesa"`
	NombreCliente string         `json:"nombreCliente" gorm:"column:nombreCliente;not null"`
	FechaOrden    time.Time      `json:"fechaOrden" gorm:"column:fechaOrden;not null"`
	Done          bool           `json:"done" gorm:"column:done"`
	Pagado        bool           `json:"pagado" gorm:"column:pagado"`
	CreatedAt     time.Time      `json:"-" gorm:"column:createdAt"`
	UpdatedAt     time.Time      `json:"-" gorm:"column:updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"column:deletedAt;index"`

	Details  []OrderDetail `json:"order_details" gorm:"foreignKey:IDOrden;references:IDOrden"`
	Employee *Employee     `json:"employee,omitempty" gorm:"foreignKey:IDEmpleado;references:IDEmpleado"`
	Table    *Table        `json:"table,omitempty" gorm:"foreignKey:IDMesa;references:IDMesa"`
}

func (Order) TableName() string {
	return "orders"
}

// ToggleDone flips the kitchen-complete flag. Every update on an order flips
// the state between "in progress" and "kitchen-done"; the flag is never taken
// from the request payload.
func (o *Order) ToggleDone() {
	o.Done = !o.Done
}
