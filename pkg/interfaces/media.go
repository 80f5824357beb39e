package interfaces

// ImageResolver maps a possibly relative storage path to a servable URL.
// Implementations must be pure: the same input always yields the same output.
type ImageResolver interface {
	Resolve(raw string) string
}

// ImageResolverFunc adapts a plain function into an ImageResolver.
type ImageResolverFunc func(raw string) string

// Resolve implements ImageResolver.
func (fn ImageResolverFunc) Resolve(raw string) string {
	if fn == nil {
		return raw
	}
	return fn(raw)
}
