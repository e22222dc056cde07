package waflow

import "strings"

const (
	ActionPing         = "ping"
	ActionInit         = "INIT"
	ActionDataExchange = "data_exchange"
	ActionBack         = "BACK"

	ScreenOrderSummary = "ORDER_SUMMARY"
	ScreenError        = "ERROR"
)

// PingResponse answers the health check WhatsApp sends when the flow is published.
func PingResponse() FlowResponse {
	return FlowResponse{Data: map[string]interface{}{"status": "active"}}
}

func ErrorResponse(message string) FlowResponse {
	return FlowResponse{
		Screen: ScreenError,
		Data:   map[string]interface{}{"error_message": message},
	}
}

// IsPing reports whether the request is a health check.
func (r *DecryptedRequest) IsPing() bool {
	return strings.EqualFold(r.Action, ActionPing)
}

// StringData reads a string entry from the request data.
func (r *DecryptedRequest) StringData(key string) string {
	if r.Data == nil {
		return ""
	}
	v, _ := r.Data[key].(string)
	return strings.TrimSpace(v)
}
