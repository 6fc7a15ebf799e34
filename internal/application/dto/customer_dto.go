package dto

// CreateCustomerRequest body para POST /api/customers: alta directa de un
// cliente, sin pasar por una venta.
type CreateCustomerRequest struct {
	DNI          string `json:"dni"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	CustomerType string `json:"customer_type,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
// El DNI es clave natural y no se modifica.
type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	CustomerType *string `json:"customer_type,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string `json:"id"`
	DNI          string `json:"dni"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	CustomerType string `json:"customer_type"`
	IsActive     bool   `json:"is_active"`
}
