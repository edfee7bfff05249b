package domain

import "encoding/json"

// Envelope is the uniform response wrapper of every backend call. Callers
// branch on Success only; error responses may still carry the raw Data for
// diagnostics.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode unmarshals the payload into v. It fails when the envelope carries
// no data at all.
func (e Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(e.Data, v)
}

func OK(data json.RawMessage) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}
