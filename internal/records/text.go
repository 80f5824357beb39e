package records

import (
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	whitespace  = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// textKeys are consulted in order when extracting text from a nested object.
var textKeys = []string{"text", "content", "value", "children"}

// PlainText flattens value into markup-free, whitespace-collapsed text.
// Absent or unsupported values yield the empty string.
func PlainText(value any) string {
	return collapse(plain(Decode(value), 0))
}

const maxDepth = 16

func plain(value any, depth int) string {
	if depth > maxDepth {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return StripMarkup(v)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if text := collapse(plain(Decode(item), depth+1)); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	case []string:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if text := collapse(StripMarkup(item)); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		for _, key := range textKeys {
			if nested, ok := v[key]; ok {
				if text := collapse(plain(Decode(nested), depth+1)); text != "" {
					return text
				}
			}
		}
		return ""
	default:
		return ""
	}
}

// StripMarkup removes tags from s and unescapes HTML entities. No whitespace
// is inserted where tags were removed.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsRune(s, '<') {
		s = stripPolicy.Sanitize(s)
	}
	return html.UnescapeString(s)
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// JoinText space-joins the non-empty parts.
func JoinText(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
