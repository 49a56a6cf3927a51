package domain

// Comercial is the tenant: the restaurant/business account that scopes
// orders, tables, menu items and socket rooms.
type Comercial struct {
	IDComercial int    `json:"idComercial" gorm:"column:idComercial;primaryKey;autoIncrement"`
	Nombre      string `json:"nombre" gorm:"column:nombre;not null"`
}

func (Comercial) TableName() string {
	return "comercials"
}
