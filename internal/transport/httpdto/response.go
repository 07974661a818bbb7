package httpdto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func NewErrorResponse(message string, code string) ErrorResponse {
	return ErrorResponse{Message: message, Code: code}
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

type HealthResponse struct {
	Status string `json:"status"`
}
