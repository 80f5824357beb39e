package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify transliterates title to ASCII, lowercases it, and collapses every
// run of non-alphanumeric characters into a single hyphen.
func Slugify(title string) string {
	ascii := strings.ToLower(unidecode.Unidecode(norm.NFC.String(strings.TrimSpace(title))))
	if ascii == "" {
		return ""
	}
	if normalized, err := slug.Normalize(ascii); err == nil && normalized != "" {
		ascii = normalized
	}
	return strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(ascii), "-"), "-")
}

// Slugger assigns unique slugs across a set of items. The first item to
// claim a base slug keeps it; later ones get "-2", "-3", and so on.
type Slugger struct {
	used map[string]struct{}
}

// NewSlugger constructs an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{used: make(map[string]struct{})}
}

// Assign returns a unique slug for title, falling back to "{kind}-{id}" when
// the title yields nothing usable.
func (s *Slugger) Assign(title string, kind Kind, id string) string {
	base := Slugify(title)
	if base == "" {
		base = FallbackSlug(kind, id)
	}
	candidate := base
	for n := 2; ; n++ {
		if _, taken := s.used[candidate]; !taken {
			break
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
	s.used[candidate] = struct{}{}
	return candidate
}

// FallbackSlug builds the "{kind}-{id}" slug used for untitled items.
func FallbackSlug(kind Kind, id string) string {
	id = strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(strings.TrimSpace(id)), "-"), "-")
	return string(kind) + "-" + id
}
