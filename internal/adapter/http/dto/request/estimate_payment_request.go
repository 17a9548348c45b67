package request

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrEmptyPaymentPayload = errors.New("mp_payload cannot be empty")

// EstimatePaymentRequest wraps the Mercado Pago payment body.
//
// Clients may also send the Mercado Pago body directly, without the
// `mp_payload` envelope.
type EstimatePaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

// ResolvePayload extracts the provider payload from a raw request body.
func ResolvePayload(raw []byte) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			w := strings.TrimSpace(string(wrapped))
			if w == "" || w == "null" {
				return nil, ErrEmptyPaymentPayload
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
