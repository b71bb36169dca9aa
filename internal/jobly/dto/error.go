package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the message and the status a response layer would send.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
