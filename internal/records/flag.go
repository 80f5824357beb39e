package records

import (
	"encoding/json"
	"strings"
)

// Truthy evaluates a boolean-like value. Literal booleans are used as is,
// strings are true only when they equal "true" (case-insensitive), objects
// carrying a "value" key are evaluated recursively, and anything else falls
// back to truthiness.
func Truthy(value any) bool {
	return truthy(Decode(value), 0)
}

func truthy(value any, depth int) bool {
	if depth > maxDepth {
		return false
	}
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	case json.Number, float64, float32, int, int32, int64, uint, uint32, uint64:
		n, ok := Number(v)
		return ok && n != 0
	case map[string]any:
		if nested, ok := v["value"]; ok {
			return truthy(Decode(nested), depth+1)
		}
		return true
	default:
		return true
	}
}

// Flag resolves field on record as a boolean flag.
func Flag(record Record, field string) bool {
	return Truthy(Resolve(record, field))
}
