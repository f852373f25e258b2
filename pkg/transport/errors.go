package transport

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx HTTP outcome. Details carries the normalized
// server-side message when one could be extracted from the error body.
type APIError struct {
	Status  int
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// ParseError is a 2xx response whose body was declared JSON but did not
// decode. Distinguishable from transport/HTTP errors.
type ParseError struct {
	Status int
}

func (e *ParseError) Error() string {
	return "Failed to parse JSON response"
}

// ValidationError is a client-side failure raised before a request is
// sent, e.g. a UI record id that is not numeric-looking.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// normalizeDetails extracts the conventional {detail: string|list} error
// body shape the backend produces. Anything else is stringified as-is, and
// an unparseable body is tolerated (empty details, not a crash).
func normalizeDetails(raw []byte, isJSON bool) string {
	if len(raw) == 0 {
		return ""
	}
	if !isJSON {
		return string(raw)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	detail, ok := body["detail"]
	if !ok {
		return string(raw)
	}

	var s string
	if err := json.Unmarshal(detail, &s); err == nil {
		return s
	}
	return string(detail)
}
