package upstream

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const unknownError = "Unknown upstream error"

// APIError reports an upstream failure with the HTTP status the proxy
// should relay to its own caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("offer feed error (status %d): %s", e.StatusCode, e.Message)
}

// FormatError flattens the feed's error payload, which may be a string, an
// array, or a field-keyed object of either, into one message. Strings pass
// through; arrays join with ", "; objects join "key: value" pairs with
// " | " (keys sorted, so the output is deterministic).
func FormatError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return unknownError
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return unknownError
	}
	return formatValue(v)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + formatValue(t[k])
		}
		return strings.Join(parts, " | ")
	default:
		return unknownError
	}
}
