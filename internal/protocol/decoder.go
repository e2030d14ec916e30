package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownErrorCode is returned when a spec-compliant response carries an
// "error" string outside the known table. The decode fails rather than
// defaulting, so a new driver error name never passes as success.
var ErrUnknownErrorCode = errors.New("unknown error code in driver response")

// Decode normalizes one decoded JSON response body into an Envelope.
//
// The dialect is keyed on the presence of a "status" field: present means
// legacy (integer status, no fallback rules), absent means spec-compliant
// (value defaulted from "capabilities" or the whole body, status derived
// from the "error" string if any).
func Decode(raw map[string]any) (*Envelope, error) {
	env := &Envelope{}

	if id, ok := raw["sessionId"]; ok && id != nil {
		env.SessionID = coerceString(id)
	}

	value, hasValue := raw["value"]
	if hasValue {
		env.Value = value
	}

	if status, ok := raw["status"]; ok {
		// Legacy dialect. No value defaulting, even when "value" was absent.
		code, err := coerceInt(status)
		if err != nil {
			return nil, fmt.Errorf("legacy status field: %w", err)
		}
		env.Status = StatusCode(code)
		return env, nil
	}

	env.SpecCompliant = true

	if !hasValue {
		if caps, ok := raw["capabilities"]; ok {
			// New-session shape: the payload lives under "capabilities".
			env.Value = caps
		} else {
			env.Value = raw
		}
	}

	if errVal, ok := raw["error"]; ok {
		name, _ := errVal.(string)
		code, known := StatusFromError(name)
		if !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownErrorCode, name)
		}
		env.Status = code
	}

	return env, nil
}

// DecodeBytes parses a raw JSON body and normalizes it.
func DecodeBytes(body []byte) (*Envelope, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing driver response: %w", err)
	}
	return Decode(raw)
}

// coerceString renders a JSON scalar in its canonical string form.
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("not an integer: %v (%T)", v, v)
	}
}
