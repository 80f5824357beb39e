package records

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Resolve returns the value stored under field. String values that look
// like JSON (a matching {} or [] pair) are decoded; when decoding fails the
// literal string is returned unchanged.
func Resolve(record Record, field string) any {
	if record == nil || field == "" {
		return nil
	}
	raw, ok := record[field]
	if !ok {
		return nil
	}
	return Decode(raw)
}

// Decode applies the JSON-like string decoding used by Resolve to a raw value.
func Decode(raw any) any {
	s, ok := raw.(string)
	if !ok || !looksLikeJSON(s) {
		return raw
	}
	decoder := json.NewDecoder(bytes.NewBufferString(strings.TrimSpace(s)))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return raw
	}
	if decoder.More() {
		return raw
	}
	return out
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// First returns the first candidate field whose resolved value is not zero.
func First(record Record, candidates ...string) (string, Value) {
	for _, field := range candidates {
		if v := Lookup(record, field); !v.IsZero() {
			return field, v
		}
	}
	return "", Value{Kind: KindEmpty}
}

// FirstText returns the plain text of the first candidate field that yields
// non-empty text.
func FirstText(record Record, candidates ...string) string {
	for _, field := range candidates {
		if text := Lookup(record, field).PlainText(); text != "" {
			return text
		}
	}
	return ""
}

