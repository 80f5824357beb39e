package team

import (
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/media"
	"github.com/goliatone/go-showcase/internal/records"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// Member is a resolved team roster entry.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Image string `json:"image"`
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithFields overrides the field candidates used for selection, name, role
// and photo lookups.
func WithFields(fields runtimeconfig.FieldsConfig) Option {
	return func(r *Resolver) {
		r.fields = fields
	}
}

// WithImageResolver wires the resolver applied to member photos.
func WithImageResolver(resolver interfaces.ImageResolver) Option {
	return func(r *Resolver) {
		if resolver != nil {
			r.images = resolver
		}
	}
}

// WithCachedLabelFallback keeps selected members that have no external team
// record when the selection cache carries a label for them.
func WithCachedLabelFallback() Option {
	return func(r *Resolver) {
		r.cachedLabels = true
	}
}

// WithLogger injects the logger used for diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver joins a case's member selection against the team collection.
type Resolver struct {
	fields       runtimeconfig.FieldsConfig
	images       interfaces.ImageResolver
	cachedLabels bool
	logger       interfaces.Logger
}

// NewResolver constructs a Resolver with the default field table.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fields: runtimeconfig.DefaultFields(),
		images: media.NewResolver(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the roster for caseRecord in selection order. Members whose
// name cannot be derived are omitted, as are members with no team record
// unless the cached label fallback is enabled.
func (r *Resolver) Resolve(caseRecord records.Record, teamRecords []records.Record) []Member {
	selection := records.Lookup(caseRecord, r.fields.Team).Selection()
	members := make([]Member, 0, len(selection.IDs))
	if len(selection.IDs) == 0 {
		return members
	}

	index := r.index(teamRecords)
	seen := make(map[string]struct{}, len(selection.IDs))
	for _, id := range selection.IDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		cached, _ := selection.Item(id)
		record, found := index[id]
		if !found && !r.cachedLabels {
			r.logger.Debug("team.member.missing", "id", id)
			continue
		}

		member := Member{ID: id}
		var photo string
		if found {
			member.Name = records.FirstText(record, r.fields.TeamName...)
			member.Role = records.FirstText(record, r.fields.TeamRole...)
			photo = records.FindImage(record, records.ImageQuery{Candidates: r.fields.TeamImage})
		}
		if member.Name == "" {
			member.Name = cached.Label
		}
		if photo == "" {
			photo = cached.Image
		}
		if member.Name == "" {
			r.logger.Debug("team.member.unnamed", "id", id)
			continue
		}
		member.Image = r.images.Resolve(photo)
		members = append(members, member)
	}
	return members
}

// Resolve is a convenience wrapper over a default Resolver.
func Resolve(caseRecord records.Record, teamRecords []records.Record, opts ...Option) []Member {
	return NewResolver(opts...).Resolve(caseRecord, teamRecords)
}

func (r *Resolver) index(teamRecords []records.Record) map[string]records.Record {
	index := make(map[string]records.Record, len(teamRecords))
	for _, record := range teamRecords {
		for _, field := range r.fields.ID {
			id := records.String(records.Resolve(record, field))
			if id == "" {
				continue
			}
			if _, exists := index[id]; !exists {
				index[id] = record
			}
		}
	}
	return index
}
