package records

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

var spaceCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// Number converts numeric-looking values to float64. Strings tolerate
// surrounding whitespace, thousands separators made of spaces or commas, and
// a decimal comma. Objects carrying a "value" key are unwrapped.
func Number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		cleaned, ok := normalizeDecimal(spaceCleaner.Replace(strings.TrimSpace(v)))
		if !ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case map[string]any:
		if nested, ok := v["value"]; ok {
			return Number(Decode(nested))
		}
	}
	return 0, false
}

// normalizeDecimal rewrites commas in s so strconv can parse it. Commas
// followed by groups of exactly three digits are thousands separators; a
// single comma followed by any other digit count is a decimal comma. Other
// comma placements are rejected.
func normalizeDecimal(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if !strings.Contains(s, ",") {
		return s, true
	}
	intPart, fraction, hasDot := strings.Cut(s, ".")
	groups := strings.Split(intPart, ",")
	grouped := groups[0] != ""
	for _, group := range groups[1:] {
		if len(group) != 3 || !isDigits(group) {
			grouped = false
			break
		}
	}
	if grouped {
		out := strings.Join(groups, "")
		if hasDot {
			out += "." + fraction
		}
		return out, true
	}
	if hasDot || len(groups) != 2 || groups[0] == "" || !isDigits(groups[1]) {
		return "", false
	}
	return groups[0] + "." + groups[1], true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders identifiers and scalar values as trimmed strings.
func String(value any) string {
	switch v := Decode(value).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any:
		for _, key := range []string{"id", "value"} {
			if nested, ok := v[key]; ok {
				return String(nested)
			}
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// Time parses common timestamp encodings. Numbers are treated as unix
// seconds, or milliseconds when they exceed the seconds range.
func Time(value any) (time.Time, bool) {
	switch v := Decode(value).(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
		return time.Time{}, false
	case map[string]any:
		if nested, ok := v["value"]; ok {
			return Time(nested)
		}
		return time.Time{}, false
	default:
		n, ok := Number(v)
		if !ok || n <= 0 {
			return time.Time{}, false
		}
		if n > 1e11 {
			return time.UnixMilli(int64(n)).UTC(), true
		}
		return time.Unix(int64(n), 0).UTC(), true
	}
}
