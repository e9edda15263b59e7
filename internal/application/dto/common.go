package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AddressDto dirección postal en requests y responses.
type AddressDto struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Street  string `json:"street"`
}
