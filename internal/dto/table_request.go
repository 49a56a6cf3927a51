package dto

type CreateTableRequest struct {
	IDComercial *int  `json:"idComercial"`
	Numero      *int  `json:"numero"`
	Disponible  *bool `json:"disponible"`
}

type UpdateTableRequest struct {
	Numero     *int  `json:"numero"`
	Disponible *bool `json:"disponible"`
}
