package dto

// HealthResponse represents a health check response
type HealthResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

// ValidationErrorResponse represents a validation error response
type ValidationErrorResponse struct {
	Success bool          `json:"success"`
	Code    string        `json:"code"`
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}
