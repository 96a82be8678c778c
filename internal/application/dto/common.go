package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse acknowledges an operation with no payload to return.
type SuccessResponse struct {
	Success bool `json:"success"`
}
