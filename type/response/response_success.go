package response

type SuccessResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
}

// Success builds the envelope. A string msg is the message and the optional
// data follows it; anything else is taken as the data itself.
func Success(msg any, data ...any) *SuccessResponse {
	message, ok := msg.(string)
	if !ok {
		return &SuccessResponse{Success: true, Data: msg}
	}

	response := &SuccessResponse{
		Success: true,
		Message: &message,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	return response
}
