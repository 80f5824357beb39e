package media

import (
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// DefaultPlaceholder is served when an image reference cannot be resolved.
const DefaultPlaceholder = "/images/placeholder.png"

var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".avif": {}, ".bmp": {},
}

// ResolverOption customises the resolver behaviour.
type ResolverOption func(*Resolver)

// WithBaseURL sets the storage base URL joined to relative paths.
func WithBaseURL(base string) ResolverOption {
	return func(r *Resolver) {
		r.base = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithPlaceholder overrides the placeholder path.
func WithPlaceholder(placeholder string) ResolverOption {
	return func(r *Resolver) {
		if trimmed := strings.TrimSpace(placeholder); trimmed != "" {
			r.placeholder = trimmed
		}
	}
}

// WithScheme sets the scheme applied to protocol-relative URLs.
func WithScheme(scheme string) ResolverOption {
	return func(r *Resolver) {
		if trimmed := strings.TrimSpace(scheme); trimmed != "" {
			r.scheme = strings.ToLower(trimmed)
		}
	}
}

// WithStoragePrefixes lists path prefixes that identify uploaded assets even
// when the file name carries no image extension.
func WithStoragePrefixes(prefixes ...string) ResolverOption {
	return func(r *Resolver) {
		r.prefixes = r.prefixes[:0]
		for _, prefix := range prefixes {
			if trimmed := strings.TrimSpace(prefix); trimmed != "" {
				r.prefixes = append(r.prefixes, trimmed)
			}
		}
	}
}

// Resolver maps storage paths onto servable URLs.
type Resolver struct {
	base        string
	placeholder string
	scheme      string
	prefixes    []string
}

var _ interfaces.ImageResolver = (*Resolver)(nil)

// NewResolver constructs a resolver. Without a base URL relative paths are
// returned rooted at "/".
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		placeholder: DefaultPlaceholder,
		scheme:      "https",
		prefixes:    []string{"/uploads/", "uploads/"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns an absolute URL for raw. Absolute and data URLs pass
// through, protocol-relative URLs receive the configured scheme, and empty
// input yields the placeholder.
func (r *Resolver) Resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return r.Placeholder()
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "data:"), strings.HasPrefix(lower, "blob:"):
		return trimmed
	case strings.HasPrefix(trimmed, "//"):
		return r.scheme + ":" + trimmed
	}
	return r.join(trimmed)
}

// Placeholder returns the resolved placeholder URL.
func (r *Resolver) Placeholder() string {
	p := r.placeholder
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "data:") {
		return p
	}
	return r.join(p)
}

// IsPlaceholder reports whether url is the resolved placeholder.
func (r *Resolver) IsPlaceholder(url string) bool {
	return url == r.Placeholder()
}

// IsImage reports whether raw looks like an image reference: a data image
// URI, a path with an image extension, or a path under a storage prefix.
func (r *Resolver) IsImage(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "data:image/") {
		return true
	}
	if parsed, err := url.Parse(trimmed); err == nil {
		if _, ok := imageExtensions[strings.ToLower(path.Ext(parsed.Path))]; ok {
			return true
		}
		lower = strings.ToLower(parsed.Path)
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func (r *Resolver) join(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return r.base + p
}
