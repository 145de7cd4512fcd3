package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de respuesta con solo mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// OptionalDate fecha opcional en el cuerpo JSON. Acepta null, "" (ausente),
// RFC 3339 o fecha corta "2006-01-02" (la envían los inputs de tipo date).
type OptionalDate struct {
	Time *time.Time
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *OptionalDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	if s == "" {
		d.Time = nil
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = &t
			return nil
		}
	}
	return fmt.Errorf("fecha inválida: %q", s)
}

// MarshalJSON implementa json.Marshaler.
func (d OptionalDate) MarshalJSON() ([]byte, error) {
	if d.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time)
}
