package models

import (
	"encoding/json"
	"time"
)

// OrientationRecord is a stored questionnaire submission and its outcome.
type OrientationRecord struct {
	ID         string          `json:"id"`
	Respuestas json.RawMessage `json:"respuestas"`
	Resultado  *Orientation    `json:"resultado,omitempty"`
	ModelID    string          `json:"model_id"`
	OK         bool            `json:"ok"`
	CreatedAt  time.Time       `json:"created_at"`
}
