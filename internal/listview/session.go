package listview

import (
	"context"
	"sync"

	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/listing"
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/records"
	"github.com/goliatone/go-showcase/internal/team"
	"github.com/goliatone/go-showcase/pkg/interfaces"
	"golang.org/x/sync/errgroup"
)

// DataListener receives the catalog once a mount's fetch has been applied.
type DataListener interface {
	DataReady(cat catalog.Catalog)
}

// Option customises a Session.
type Option func(*Session)

// WithNormalizer overrides the record normalizer.
func WithNormalizer(normalizer *catalog.Normalizer) Option {
	return func(s *Session) {
		if normalizer != nil {
			s.normalizer = normalizer
		}
	}
}

// WithTeamResolver overrides the team resolver.
func WithTeamResolver(resolver *team.Resolver) Option {
	return func(s *Session) {
		if resolver != nil {
			s.team = resolver
		}
	}
}

// WithEngine overrides the listing engine.
func WithEngine(engine *listing.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithPageRequest sets the paging parameters sent to the content API.
func WithPageRequest(page interfaces.PageRequest) Option {
	return func(s *Session) {
		s.page = page
	}
}

// WithInitialState seeds the filter state.
func WithInitialState(state listing.State) Option {
	return func(s *Session) {
		s.state = state
	}
}

// WithScroller sets the function that scrolls a rendered card into view.
func WithScroller(fn func(id string, offset int)) Option {
	return func(s *Session) {
		s.scroller = fn
	}
}

// WithLogger injects the logger used for diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one list view lifetime: it fetches the snapshot, holds the
// filter state and the composed rows, and notifies listeners when data is
// ready. Each Mount starts a new generation; results of older generations
// are discarded.
type Session struct {
	api        interfaces.ContentAPI
	normalizer *catalog.Normalizer
	team       *team.Resolver
	engine     *listing.Engine
	page       interfaces.PageRequest
	scroller   func(id string, offset int)
	logger     interfaces.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	unmounting int
	listeners  []DataListener
	snapshot   catalog.Snapshot
	cat        catalog.Catalog
	state      listing.State
	view       listing.View
	loaded     bool
	failed     bool
}

var _ interfaces.CardLocator = (*Session)(nil)

// NewSession constructs an unmounted session reading from api.
func NewSession(api interfaces.ContentAPI, opts ...Option) *Session {
	s := &Session{
		api:        api,
		normalizer: catalog.NewNormalizer(),
		team:       team.NewResolver(),
		engine:     listing.NewEngine(nil),
		page:       interfaces.DefaultPageRequest(),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = s.engine.View(s.cat, s.state)
	return s
}

// Subscribe registers listener for data-ready notifications. A listener added
// after data is loaded is notified immediately.
func (s *Session) Subscribe(listener DataListener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	loaded, cat := s.loaded, s.cat
	s.mu.Unlock()
	if loaded {
		listener.DataReady(cat)
	}
}

// Mount starts fetching the snapshot in the background and returns a channel
// closed once the result has been applied or discarded. A previous mount
// still in flight is cancelled. A Mount racing an Unmount that is still
// waiting returns a closed channel without fetching.
func (s *Session) Mount(ctx context.Context) <-chan struct{} {
	fetchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	if s.unmounting > 0 {
		s.mu.Unlock()
		cancel()
		close(done)
		s.logger.Debug("listview.mount.skipped", "reason", "unmounting")
		return done
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	generation := s.generation
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer close(done)
		snapshot, err := s.fetch(fetchCtx)
		s.apply(fetchCtx, generation, snapshot, err)
	}()
	return done
}

// Load mounts and waits for the fetch to be applied.
func (s *Session) Load(ctx context.Context) {
	select {
	case <-s.Mount(ctx):
	case <-ctx.Done():
	}
}

// Unmount cancels any in-flight fetch and waits for it to finish. Results
// arriving after Unmount are never applied.
func (s *Session) Unmount() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.unmounting++
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.unmounting--
	s.mu.Unlock()
}

func (s *Session) fetch(ctx context.Context) (catalog.Snapshot, error) {
	var (
		content *interfaces.ContentEnvelope
		members *interfaces.TeamEnvelope
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		envelope, err := s.api.FetchContent(groupCtx, s.page)
		if err != nil {
			return err
		}
		content = envelope
		return nil
	})
	group.Go(func() error {
		envelope, err := s.api.FetchTeam(groupCtx, s.page)
		if err != nil {
			return err
		}
		members = envelope
		return nil
	})
	if err := group.Wait(); err != nil {
		return catalog.Snapshot{}, err
	}

	var snapshot catalog.Snapshot
	if content != nil {
		snapshot.Cases = toRecords(content.Data.Cases)
		snapshot.News = toRecords(content.Data.News)
		snapshot.Banners = toRecords(content.Data.Banners)
	}
	if members != nil {
		snapshot.Team = toRecords(members.Data.Team)
	}
	return snapshot, nil
}

func (s *Session) apply(ctx context.Context, generation uint64, snapshot catalog.Snapshot, err error) {
	s.mu.Lock()
	if generation != s.generation || (ctx.Err() != nil && err != nil) {
		s.mu.Unlock()
		s.logger.Debug("listview.fetch.discarded", "generation", generation)
		return
	}
	if err != nil {
		s.logger.Warn("listview.fetch.failed", "error", err)
		snapshot = catalog.Snapshot{}
	}
	s.failed = err != nil
	s.snapshot = snapshot
	s.cat = s.normalizer.Build(snapshot)
	s.view = s.engine.View(s.cat, s.state)
	s.loaded = true
	cat := s.cat
	listeners := append([]DataListener(nil), s.listeners...)
	s.mu.Unlock()

	s.logger.Info("listview.fetch.applied",
		"generation", generation,
		"items", cat.Len(),
		"team", len(snapshot.Team),
		"failed", err != nil,
	)
	for _, listener := range listeners {
		listener.DataReady(cat)
	}
}

// Loaded reports whether a fetch has been applied.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Failed reports whether the last applied fetch failed and the view is empty
// because of it.
func (s *Session) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Catalog returns the normalized items of the current snapshot.
func (s *Session) Catalog() catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat
}

// View returns the current listing view.
func (s *Session) View() listing.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// State returns the current filter state.
func (s *Session) State() listing.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectCategory applies a category selection and recomposes the rows.
func (s *Session) SelectCategory(key string) listing.View {
	return s.update(func(state listing.State) listing.State { return state.SelectCategory(key) })
}

// SelectTag applies a tag toggle and recomposes the rows.
func (s *Session) SelectTag(tag string) listing.View {
	return s.update(func(state listing.State) listing.State { return state.SelectTag(tag) })
}

// SelectType applies a type toggle and recomposes the rows.
func (s *Session) SelectType(kind string) listing.View {
	return s.update(func(state listing.State) listing.State { return state.SelectType(kind) })
}

// SetState replaces the filter state.
func (s *Session) SetState(next listing.State) listing.View {
	return s.update(func(listing.State) listing.State { return next })
}

func (s *Session) update(fn func(listing.State) listing.State) listing.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.state)
	if next == s.state {
		return s.view
	}
	s.state = next
	s.view = s.engine.View(s.cat, s.state)
	return s.view
}

// Team resolves the roster of item against the snapshot's team records.
func (s *Session) Team(item catalog.Item) []team.Member {
	s.mu.Lock()
	members := s.snapshot.Team
	s.mu.Unlock()
	return s.team.Resolve(item.Record, members)
}

// HasCard reports whether the item with id is in the currently rendered rows.
func (s *Session) HasCard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.view.Rows {
		for _, item := range row.Items {
			if item.ID == id {
				return true
			}
		}
	}
	return false
}

// ScrollTo forwards to the configured scroller.
func (s *Session) ScrollTo(id string, offset int) {
	if s.scroller != nil {
		s.scroller(id, offset)
	}
}

func toRecords(in []interfaces.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, record := range in {
		if record != nil {
			out = append(out, records.Record(record))
		}
	}
	return out
}
