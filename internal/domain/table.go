package domain

// Table is a physical restaurant table ("mesa"). Reference entity for
// orders; availability is flipped as parties are seated and leave.
type Table struct {
	IDMesa      int  `json:"idMesa" gorm:"column:idMesa;primaryKey;autoIncrement"`
	IDComercial int  `json:"idComercial" gorm:"column:idComercial;not null;index"`
	Numero      int  `json:"numero" gorm:"column:numero;not null"`
	Disponible  bool `json:"disponible" gorm:"column:disponible"`
}

func (Table) TableName() string {
	return "mesas"
}
