package domain

type Employee struct {
	IDEmpleado int    `json:"idEmpleado" gorm:"column:idEmpleado;primaryKey;autoIncrement"`
	Nombre     string `json:"nombre" gorm:"column:nombre;not null"`
	Apellido   string `json:"apellido" gorm:"column:apellido"`
}

func (Employee) TableName() string {
	return "employees"
}
