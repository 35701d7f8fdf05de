package handler

// Response is the envelope every endpoint returns: Status is "success"
// or "error", Data carries the payload, Message the failure reason.
// Empty fields are omitted so success bodies stay minimal.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// NewErrorResponse is for failures a handler reports directly; errors
// routed through c.Error are rendered by the error middleware instead.
func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}
