// Package protocol normalizes driver responses. A driver answers in one of
// two JSON dialects: the legacy one carries an integer "status" field, the
// spec-compliant one carries no status at all and reports failures as an
// "error" string. Decode folds both into a single Envelope.
package protocol

import "encoding/json"

// Envelope is the normalized form of one decoded driver response.
type Envelope struct {
	// Value is the response payload, kept verbatim from the wire: a scalar,
	// map, or slice as produced by encoding/json.
	Value any

	// SessionID is the session the response belongs to, when the driver
	// reported one.
	SessionID string

	// Status is the legacy status code; StatusSuccess for spec-compliant
	// responses without an error.
	Status StatusCode

	// SpecCompliant records which dialect the response used. Set once at
	// decode time; it is in-process metadata and never serialized.
	SpecCompliant bool
}

// wireEnvelope is the serialized shape. The wire form is always the legacy
// dialect: integer status, no dialect marker.
type wireEnvelope struct {
	Value     any    `json:"value"`
	SessionID string `json:"sessionId"`
	Status    int    `json:"status"`
}

// MarshalJSON renders the envelope as the legacy dialect would.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEnvelope{
		Value:     e.Value,
		SessionID: e.SessionID,
		Status:    int(e.Status),
	})
}
