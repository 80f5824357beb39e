package interfaces

import "context"

// Record is a loosely typed content entry as delivered by the content backend.
// Values may be scalars, JSON encoded strings, or nested objects.
type Record = map[string]any

// PageRequest carries the paging parameters forwarded to the content backend.
type PageRequest struct {
	Page  int
	Limit int
}

// DefaultPageRequest approximates "fetch everything" with a single large page.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 1, Limit: 500}
}

// ContentCollections groups the record collections returned by the content endpoint.
type ContentCollections struct {
	Cases   []Record `json:"cases"`
	News    []Record `json:"news"`
	Banners []Record `json:"banners"`
}

// ContentEnvelope mirrors the `{data: {...}}` payload of the content endpoint.
type ContentEnvelope struct {
	Data ContentCollections `json:"data"`
}

// TeamCollections groups the team records returned by the team endpoint.
type TeamCollections struct {
	Team []Record `json:"team"`
}

// TeamEnvelope mirrors the `{data: {team: [...]}}` payload of the team endpoint.
type TeamEnvelope struct {
	Data TeamCollections `json:"data"`
}

// ContentAPI is the external collaborator providing content and team records.
type ContentAPI interface {
	FetchContent(ctx context.Context, req PageRequest) (*ContentEnvelope, error)
	FetchTeam(ctx context.Context, req PageRequest) (*TeamEnvelope, error)
}
