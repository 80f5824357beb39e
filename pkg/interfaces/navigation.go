package interfaces

// LocationState is the opaque state bag carried with a navigation entry.
type LocationState map[string]any

// Location describes the current navigable location.
type Location struct {
	Path  string
	State LocationState
}

// Navigator exposes the host's location and history operations.
type Navigator interface {
	Location() Location
	Push(path string, state LocationState)
	Replace(path string, state LocationState)
}

// CardLocator reports whether a list card is rendered and scrolls it into view.
type CardLocator interface {
	HasCard(id string) bool
	ScrollTo(id string, offset int)
}
