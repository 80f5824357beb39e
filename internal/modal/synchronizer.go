package modal

import (
	"sync"
	"time"

	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/routes"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// BackgroundKey is the location state key holding the path to restore on close.
const BackgroundKey = "background"

// Status is a point-in-time view of the synchronizer.
type Status struct {
	State     State
	Item      *catalog.Item
	Pending   string
	DataReady bool
}

// Option customises a Synchronizer.
type Option func(*Synchronizer)

// WithContext selects the detail route family and lookup collection.
func WithContext(mode Context) Option {
	return func(s *Synchronizer) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithRoutes sets the route table used to build and match paths.
func WithRoutes(table *routes.Table) Option {
	return func(s *Synchronizer) {
		if table != nil {
			s.routes = table
		}
	}
}

// WithTimers overrides the timer source.
func WithTimers(timers Timers) Option {
	return func(s *Synchronizer) {
		if timers != nil {
			s.timers = timers
		}
	}
}

// WithCards wires the list used for scroll-into-view.
func WithCards(cards interfaces.CardLocator) Option {
	return func(s *Synchronizer) {
		s.cards = cards
	}
}

// WithConfig applies close animation, scroll delay and header offset.
func WithConfig(cfg runtimeconfig.ModalConfig) Option {
	return func(s *Synchronizer) {
		s.closeDelay = cfg.CloseAnimation
		s.scrollDelay = cfg.ScrollDelay
		s.headerOffset = cfg.HeaderOffset
	}
}

// WithLogger injects the logger used for diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers fn to receive the status after every transition.
func WithObserver(fn func(Status)) Option {
	return func(s *Synchronizer) {
		s.observer = fn
	}
}

// Synchronizer keeps the modal state and the location in agreement. Events
// are applied one at a time from a queue; effects that re-enter Dispatch,
// such as a navigator echoing a location change, are queued behind the
// current event.
type Synchronizer struct {
	mu    sync.Mutex
	table compiledTable

	mode         Context
	nav          interfaces.Navigator
	routes       *routes.Table
	timers       Timers
	cards        interfaces.CardLocator
	closeDelay   time.Duration
	scrollDelay  time.Duration
	headerOffset int
	logger       interfaces.Logger
	observer     func(Status)

	state      State
	item       catalog.Item
	navigated  bool
	background string
	cat        catalog.Catalog
	ready      bool
	pending    *interfaces.Location
	disposed   bool

	timerSeq    uint64
	closeToken  uint64
	scrollToken uint64
	closeTimer  Timer
	scrollTimer Timer

	queue    []Event
	draining bool
}

// New constructs a closed Synchronizer over nav.
func New(nav interfaces.Navigator, opts ...Option) *Synchronizer {
	defaults := runtimeconfig.DefaultConfig().Modal
	s := &Synchronizer{
		table:        compileTransitions(transitionTable),
		mode:         ContextCases,
		nav:          nav,
		timers:       RealTimers{},
		closeDelay:   defaults.CloseAnimation,
		scrollDelay:  defaults.ScrollDelay,
		headerOffset: defaults.HeaderOffset,
		logger:       logging.NoOp(),
		state:        StateClosed,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.routes == nil {
		s.routes = routes.DefaultTable()
	}
	return s
}

// Status returns the current status.
func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Sync feeds the navigator's current location through the synchronizer.
func (s *Synchronizer) Sync() {
	s.Dispatch(Event{Type: EventLocationChanged, Location: s.nav.Location()})
}

// ClickCard opens item as if its card was clicked.
func (s *Synchronizer) ClickCard(item catalog.Item) {
	s.Dispatch(Event{Type: EventCardClicked, Item: item})
}

// RequestClose starts closing the modal.
func (s *Synchronizer) RequestClose(reason CloseReason) {
	s.Dispatch(Event{Type: EventCloseRequested, Reason: reason})
}

// LocationChanged reports a location change from the host.
func (s *Synchronizer) LocationChanged(location interfaces.Location) {
	s.Dispatch(Event{Type: EventLocationChanged, Location: location})
}

// DataReady supplies the item collections used for deep-link lookups.
func (s *Synchronizer) DataReady(cat catalog.Catalog) {
	s.Dispatch(Event{Type: EventDataReady, Catalog: cat})
}

// Dispose cancels timers and stops processing further events.
func (s *Synchronizer) Dispose() {
	s.Dispatch(Event{Type: EventDispose})
}

// Dispatch enqueues ev and drains the queue unless a drain is already running.
func (s *Synchronizer) Dispatch(ev Event) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		effects := s.apply(next)
		s.mu.Unlock()
		for _, effect := range effects {
			effect()
		}
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

func (s *Synchronizer) apply(ev Event) []func() {
	if s.disposed {
		return nil
	}
	transition, ok := s.table.lookup(ev.Type, s.state)
	if !ok {
		s.logger.Debug("modal.event.ignored", "event", ev.Type, "state", s.state)
		return nil
	}

	from := s.state
	var effects []func()
	to := s.handle(ev, &effects)
	if !transition.allows(to) {
		s.logger.Error("modal.transition.invalid", "event", ev.Type, "from", from, "to", to)
		return effects
	}
	s.state = to
	if from != to {
		s.logger.Debug("modal.transition", "event", ev.Type, "from", from, "to", to, "slug", s.item.Slug)
	}
	if s.observer != nil {
		status := s.statusLocked()
		observer := s.observer
		effects = append(effects, func() { observer(status) })
	}
	return effects
}

func (s *Synchronizer) handle(ev Event, effects *[]func()) State {
	switch ev.Type {
	case EventCardClicked:
		return s.onCardClicked(ev, effects)
	case EventCloseRequested:
		return s.onCloseRequested(ev)
	case EventCloseElapsed:
		return s.onCloseElapsed(ev, effects)
	case EventLocationChanged:
		return s.onLocationChanged(ev.Location, effects)
	case EventDataReady:
		return s.onDataReady(ev, effects)
	case EventScrollElapsed:
		return s.onScrollElapsed(ev, effects)
	case EventDispose:
		s.stopTimers()
		s.clearItem()
		s.pending = nil
		s.disposed = true
		return StateClosed
	}
	return s.state
}

func (s *Synchronizer) onCardClicked(ev Event, effects *[]func()) State {
	item := ev.Item
	if s.state == StateOpen && s.item.ID == item.ID {
		s.logger.Debug("modal.click.ignored", "slug", item.Slug)
		return StateOpen
	}
	s.item = item
	s.navigated = false
	if s.mode.Routable(item) {
		if path := s.detailPath(item); path != "" {
			current := s.nav.Location()
			if s.state != StateOpen || s.background == "" {
				s.background = current.Path
			}
			state := interfaces.LocationState{BackgroundKey: s.background}
			s.navigated = true
			nav := s.nav
			*effects = append(*effects, func() { nav.Push(path, state) })
		}
	}
	s.enterOpen()
	return StateOpen
}

func (s *Synchronizer) onCloseRequested(ev Event) State {
	if s.state == StateClosing {
		s.logger.Debug("modal.close.ignored", "reason", ev.Reason)
		return StateClosing
	}
	s.closeToken = s.nextToken()
	token := s.closeToken
	s.closeTimer = s.timers.AfterFunc(s.closeDelay, func() {
		s.Dispatch(Event{Type: EventCloseElapsed, timer: token})
	})
	s.logger.Debug("modal.close.started", "reason", ev.Reason, "slug", s.item.Slug)
	return StateClosing
}

func (s *Synchronizer) onCloseElapsed(ev Event, effects *[]func()) State {
	if ev.timer != s.closeToken {
		return s.state
	}
	navigated := s.navigated
	target := s.closeTarget()
	s.stopTimers()
	s.clearItem()
	if navigated {
		nav := s.nav
		*effects = append(*effects, func() { nav.Replace(target, nil) })
	}
	return StateClosed
}

func (s *Synchronizer) onLocationChanged(location interfaces.Location, effects *[]func()) State {
	match, ok := s.routes.Match(location.Path)
	if !ok || match.Route != s.mode.DetailRoute() {
		s.pending = nil
		if s.state == StateClosed {
			return StateClosed
		}
		s.logger.Debug("modal.route.left", "path", location.Path)
		s.stopTimers()
		s.clearItem()
		return StateClosed
	}

	if !s.ready {
		pending := location
		s.pending = &pending
		s.logger.Debug("modal.deeplink.pending", "path", location.Path)
		return s.state
	}
	return s.resolve(location, match, effects)
}

func (s *Synchronizer) onDataReady(ev Event, effects *[]func()) State {
	s.cat = ev.Catalog
	s.ready = true

	if s.state == StateOpen {
		s.pending = nil
		for _, item := range s.mode.Collection(s.cat) {
			if item.ID == s.item.ID {
				s.item = item
				break
			}
		}
		return StateOpen
	}
	if s.pending == nil || s.state != StateClosed {
		return s.state
	}

	location := *s.pending
	s.pending = nil
	match, ok := s.routes.Match(location.Path)
	if !ok || match.Route != s.mode.DetailRoute() {
		return StateClosed
	}
	return s.resolve(location, match, effects)
}

func (s *Synchronizer) onScrollElapsed(ev Event, effects *[]func()) State {
	if ev.timer != s.scrollToken {
		return StateOpen
	}
	s.scrollTimer = nil
	if s.cards == nil {
		return StateOpen
	}
	cards, id, offset, logger := s.cards, s.item.ID, s.headerOffset, s.logger
	*effects = append(*effects, func() {
		if !cards.HasCard(id) {
			logger.Debug("modal.scroll.skipped", "id", id)
			return
		}
		cards.ScrollTo(id, offset)
	})
	return StateOpen
}

func (s *Synchronizer) resolve(location interfaces.Location, match routes.Match, effects *[]func()) State {
	item, err := ResolveDeepLink(s.mode, match, s.cat)
	if err != nil {
		s.logger.Info("modal.deeplink.invalid", "path", location.Path, "error", err)
		s.stopTimers()
		s.clearItem()
		root := s.listingRoot()
		nav := s.nav
		*effects = append(*effects, func() { nav.Replace(root, nil) })
		return StateClosed
	}

	if s.state == StateOpen && s.item.ID == item.ID {
		return StateOpen
	}
	if s.state == StateClosing {
		s.stopTimers()
	}
	s.item = item
	s.navigated = true
	if bg, ok := location.State[BackgroundKey].(string); ok && bg != "" {
		s.background = bg
	}
	s.enterOpen()
	return StateOpen
}

func (s *Synchronizer) enterOpen() {
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
	}
	s.scrollToken = s.nextToken()
	token := s.scrollToken
	s.scrollTimer = s.timers.AfterFunc(s.scrollDelay, func() {
		s.Dispatch(Event{Type: EventScrollElapsed, timer: token})
	})
}

func (s *Synchronizer) closeTarget() string {
	if s.nav != nil {
		if bg, ok := s.nav.Location().State[BackgroundKey].(string); ok && bg != "" {
			return bg
		}
	}
	if s.background != "" {
		return s.background
	}
	return s.listingRoot()
}

func (s *Synchronizer) detailPath(item catalog.Item) string {
	path, err := s.routes.Build(s.mode.DetailRoute(), s.mode.DetailParams(item))
	if err != nil {
		s.logger.Warn("modal.detail_path.failed", "kind", item.Kind, "slug", item.Slug, "error", err)
		return ""
	}
	return path
}

func (s *Synchronizer) listingRoot() string {
	path, err := s.routes.Build(s.mode.ListingRoute(), nil)
	if err != nil {
		return s.routes.ListingRoot()
	}
	return path
}

func (s *Synchronizer) stopTimers() {
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
		s.scrollTimer = nil
	}
	s.closeToken = 0
	s.scrollToken = 0
}

func (s *Synchronizer) clearItem() {
	s.item = catalog.Item{}
	s.navigated = false
	s.background = ""
}

func (s *Synchronizer) nextToken() uint64 {
	s.timerSeq++
	return s.timerSeq
}

func (s *Synchronizer) statusLocked() Status {
	status := Status{State: s.state, DataReady: s.ready}
	if s.state != StateClosed {
		item := s.item
		status.Item = &item
	}
	if s.pending != nil {
		status.Pending = s.pending.Path
	}
	return status
}
