package domain

type MenuItem struct {
	IDMenuItem     int     `json:"id_menu_item" gorm:"column:id_menu_item;primaryKey;autoIncrement"`
	IDComercial    int     `json:"idComercial" gorm:"column:idComercial;not null;index"`
	IDCategoria    int     `json:"idCategoria" gorm:"column:idCategoria"`
	NombreItem     string  `json:"nombre_item" gorm:"column:nombre_item;not null"`
	Precio         float64 `json:"precio" gorm:"column:precio"`
	Disponibilidad bool    `json:"disponibilidad" gorm:"column:disponibilidad"`
	DetallesItem   string  `json:"detalles_item" gorm:"column:detalles_item"`
	Descuento      float64 `json:"descuento" gorm:"column:descuento"`
	URL            string  `json:"url" gorm:"column:url"`
}

func (MenuItem) TableName() string {
	return "menuItems"
}

// FinalPrice applies the discount percentage over the base price.
func (m MenuItem) FinalPrice() float64 {
	if m.Descuento <= 0 {
		return m.Precio
	}
	return m.Precio * (1 - m.Descuento/100)
}
