package records

import (
	"regexp"
	"strings"
)

var imageKeys = []string{"url", "src", "path", "href"}

var (
	logoKeyPattern    = regexp.MustCompile(`(?i)logo|logotip`)
	previewKeyPattern = regexp.MustCompile(`(?i)prev|preview|oblozh|cover`)
)

func firstImageKey(obj map[string]any) (string, bool) {
	for _, key := range imageKeys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return key, true
		}
	}
	return "", false
}

// ImageSource extracts the raw image reference carried by value: a plain
// string, an object with url/src/path, a Strapi style {data:{attributes:{url}}}
// envelope, a tagged {type,value} node, or the first usable list entry.
func ImageSource(value any) string {
	return imageSource(Decode(value), 0)
}

func imageSource(value any, depth int) string {
	if depth > maxDepth {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for _, item := range v {
			if src := imageSource(Decode(item), depth+1); src != "" {
				return src
			}
		}
	case map[string]any:
		if key, ok := firstImageKey(v); ok {
			return strings.TrimSpace(v[key].(string))
		}
		for _, key := range []string{"data", "attributes", "image", "file", "value"} {
			if nested, ok := v[key]; ok {
				if src := imageSource(Decode(nested), depth+1); src != "" {
					return src
				}
			}
		}
	}
	return ""
}

// ImagePicker decides whether a raw reference can be served as an image.
type ImagePicker func(raw string) bool

// ImageQuery describes how FindImage looks for an image reference.
type ImageQuery struct {
	// Candidates are exact field names tried first, in order.
	Candidates []string
	// Prefer selects the field names scanned first when no candidate matched.
	Prefer *regexp.Regexp
	// Avoid excludes field names from the scan.
	Avoid *regexp.Regexp
	// Exclude lists fields never scanned (rich content blocks).
	Exclude []string
	// AnyField extends the scan to every remaining field after the preferred ones.
	AnyField bool
	// IsImage filters scanned values; candidates are accepted without it.
	IsImage ImagePicker
}

// FindImage resolves the raw image reference for a record according to q.
// Field scans walk keys in sorted order so results are deterministic.
func FindImage(record Record, q ImageQuery) string {
	for _, field := range q.Candidates {
		if src := Lookup(record, field).ImageSource(); src != "" {
			return src
		}
	}
	if q.IsImage == nil || len(record) == 0 {
		return ""
	}

	skip := make(map[string]struct{}, len(q.Exclude)+len(q.Candidates))
	for _, field := range q.Exclude {
		skip[field] = struct{}{}
	}
	for _, field := range q.Candidates {
		skip[field] = struct{}{}
	}

	var rest []string
	for _, key := range SortedKeys(record) {
		if _, ok := skip[key]; ok {
			continue
		}
		if q.Avoid != nil && q.Avoid.MatchString(key) {
			continue
		}
		if q.Prefer != nil && !q.Prefer.MatchString(key) {
			rest = append(rest, key)
			continue
		}
		if src := Lookup(record, key).ImageSource(); src != "" && q.IsImage(src) {
			return src
		}
	}
	if !q.AnyField {
		return ""
	}
	for _, key := range rest {
		if src := Lookup(record, key).ImageSource(); src != "" && q.IsImage(src) {
			return src
		}
	}
	return ""
}

// LogoKeyPattern matches field names that conventionally hold logos.
func LogoKeyPattern() *regexp.Regexp { return logoKeyPattern }

// PreviewKeyPattern matches field names that conventionally hold preview images.
func PreviewKeyPattern() *regexp.Regexp { return previewKeyPattern }
