package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeIndividual = "individual"
	CustomerTypeBusiness   = "business"
)

// Customer representa un cliente identificado por su DNI (clave natural
// única). Se crea de forma perezosa en la primera venta que lo referencia;
// ventas posteriores con el mismo DNI se adjuntan a la fila existente y nunca
// sobreescriben su nombre.
type Customer struct {
	ID           string
	DNI          string
	Name         string
	Email        string
	Phone        string
	Address      string
	CustomerType string // individual | business
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
