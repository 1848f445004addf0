package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// APIError error devuelto por el backend con status no-2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// parseAPIError extrae el mensaje de error del body con la cadena de
// fallbacks del contrato: campo JSON "message" → texto crudo → "Status NNN".
func parseAPIError(status int, raw []byte) *APIError {
	msg := fmt.Sprintf("Status %d", status)

	if texto := strings.TrimSpace(string(bytes.TrimSpace(raw))); texto != "" {
		msg = texto
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
			msg = envelope.Message
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}
