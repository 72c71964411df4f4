package response

type ErrorResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

func Error(msg any) *ErrorResponse {
	message := "Unknown Error"
	switch m := msg.(type) {
	case string:
		message = m
	case error:
		message = m.Error()
	}
	return &ErrorResponse{
		Success: false,
		Message: &message,
	}
}
