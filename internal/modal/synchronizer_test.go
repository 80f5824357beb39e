package modal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/modal"
	"github.com/goliatone/go-showcase/internal/routes"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
)

type scroll struct {
	id     string
	offset int
}

type fakeCards struct {
	rendered map[string]bool
	scrolls  []scroll
}

func (c *fakeCards) HasCard(id string) bool { return c.rendered[id] }

func (c *fakeCards) ScrollTo(id string, offset int) {
	c.scrolls = append(c.scrolls, scroll{id: id, offset: offset})
}

type harness struct {
	sync   *modal.Synchronizer
	nav    *modal.MemoryNavigator
	timers *modal.ManualTimers
	cards  *fakeCards
}

func newHarness(t *testing.T, path string, mode modal.Context) *harness {
	t.Helper()
	h := &harness{
		nav:    modal.NewMemoryNavigator(path),
		timers: modal.NewManualTimers(),
		cards:  &fakeCards{rendered: map[string]bool{}},
	}
	h.sync = modal.New(h.nav,
		modal.WithContext(mode),
		modal.WithTimers(h.timers),
		modal.WithCards(h.cards),
		modal.WithConfig(runtimeconfig.ModalConfig{
			CloseAnimation: 300 * time.Millisecond,
			ScrollDelay:    50 * time.Millisecond,
			HeaderOffset:   100,
		}),
	)
	h.nav.Listen(h.sync.LocationChanged)
	return h
}

func fixture() catalog.Catalog {
	return catalog.Catalog{
		Cases:   []catalog.Item{{ID: "c1", Kind: catalog.KindCase, Slug: "alpha"}},
		News:    []catalog.Item{{ID: "n1", Kind: catalog.KindNews, Slug: "launch"}},
		Shop:    []catalog.Item{{ID: "s1", Kind: catalog.KindShop, Slug: "mug"}},
		Banners: []catalog.Item{{ID: "b1", Kind: catalog.KindBanner, Slug: "promo"}},
	}
}

func (h *harness) replaces() []modal.Navigation {
	var out []modal.Navigation
	for _, nav := range h.nav.History() {
		if nav.Op == modal.OpReplace {
			out = append(out, nav)
		}
	}
	return out
}

func TestDeepLinkWaitsForData(t *testing.T) {
	h := newHarness(t, "/case/alpha", modal.ContextCases)

	h.sync.Sync()
	status := h.sync.Status()
	if status.State != modal.StateClosed || status.Pending != "/case/alpha" {
		t.Fatalf("expected pending deep link, got %+v", status)
	}
	if len(h.nav.History()) != 0 {
		t.Fatalf("expected no navigation before data, got %+v", h.nav.History())
	}

	h.sync.DataReady(fixture())
	status = h.sync.Status()
	if status.State != modal.StateOpen || status.Item == nil || status.Item.ID != "c1" {
		t.Fatalf("expected alpha open, got %+v", status)
	}
	if len(h.nav.History()) != 0 {
		t.Fatalf("expected no redirect, got %+v", h.nav.History())
	}
}

func TestInvalidDeepLinksRedirectToListingRoot(t *testing.T) {
	cases := []struct {
		name string
		path string
		mode modal.Context
		root string
	}{
		{"kind mismatch", "/banner/alpha", modal.ContextCases, "/"},
		{"unknown slug", "/case/missing", modal.ContextCases, "/"},
		{"blog lookup excludes cases", "/blog/alpha", modal.ContextBlog, "/blog"},
		{"shop lookup excludes news", "/shop/launch", modal.ContextShop, "/shop"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, tc.path, tc.mode)
			h.sync.DataReady(fixture())
			h.sync.Sync()

			if status := h.sync.Status(); status.State != modal.StateClosed {
				t.Fatalf("expected closed, got %+v", status)
			}
			replaces := h.replaces()
			if len(replaces) != 1 || replaces[0].Path != tc.root {
				t.Fatalf("expected single replace to %s, got %+v", tc.root, replaces)
			}
		})
	}
}

func TestContextsOpenTheirOwnCollections(t *testing.T) {
	cases := []struct {
		path string
		mode modal.Context
		id   string
	}{
		{"/news/launch", modal.ContextCases, "n1"},
		{"/shop/mug", modal.ContextCases, ""},
		{"/blog/launch", modal.ContextBlog, "n1"},
		{"/shop/mug", modal.ContextShop, "s1"},
	}
	for _, tc := range cases {
		h := newHarness(t, tc.path, tc.mode)
		h.sync.DataReady(fixture())
		h.sync.Sync()

		status := h.sync.Status()
		if tc.id == "" {
			if status.State != modal.StateClosed {
				t.Fatalf("%s in %s: expected closed, got %+v", tc.path, tc.mode, status)
			}
			continue
		}
		if status.State != modal.StateOpen || status.Item.ID != tc.id {
			t.Fatalf("%s in %s: expected %s open, got %+v", tc.path, tc.mode, tc.id, status)
		}
	}
}

func TestCardClickPushesAndCloseRestoresBackground(t *testing.T) {
	h := newHarness(t, "/?category=all", modal.ContextCases)
	h.sync.DataReady(fixture())

	h.sync.ClickCard(fixture().Cases[0])
	history := h.nav.History()
	if len(history) != 1 || history[0].Op != modal.OpPush || history[0].Path != "/case/alpha" {
		t.Fatalf("expected push to detail, got %+v", history)
	}
	if bg := history[0].State[modal.BackgroundKey]; bg != "/?category=all" {
		t.Fatalf("expected background state, got %v", bg)
	}
	if status := h.sync.Status(); status.State != modal.StateOpen {
		t.Fatalf("expected open after echo, got %+v", status)
	}

	h.sync.RequestClose(modal.CloseOverlay)
	h.sync.RequestClose(modal.CloseEscape)
	if status := h.sync.Status(); status.State != modal.StateClosing {
		t.Fatalf("expected closing, got %+v", status)
	}

	closeTimers := 0
	for _, delay := range h.timers.Pending() {
		if delay == 300*time.Millisecond {
			closeTimers++
		}
	}
	if closeTimers != 1 {
		t.Fatalf("expected exactly one close animation, got %d", closeTimers)
	}

	h.timers.FireAll()
	replaces := h.replaces()
	if len(replaces) != 1 || replaces[0].Path != "/?category=all" {
		t.Fatalf("expected single navigation back, got %+v", replaces)
	}
	if status := h.sync.Status(); status.State != modal.StateClosed {
		t.Fatalf("expected closed, got %+v", status)
	}
}

func TestClickingOpenItemAgainKeepsHistory(t *testing.T) {
	h := newHarness(t, "/", modal.ContextCases)
	h.sync.DataReady(fixture())

	h.sync.ClickCard(fixture().Cases[0])
	h.sync.ClickCard(fixture().Cases[0])

	history := h.nav.History()
	if len(history) != 1 || history[0].Path != "/case/alpha" {
		t.Fatalf("expected a single push, got %+v", history)
	}
	if status := h.sync.Status(); status.State != modal.StateOpen || status.Item == nil || status.Item.Slug != "alpha" {
		t.Fatalf("expected alpha still open, got %+v", status)
	}

	h.sync.ClickCard(fixture().News[0])
	if history := h.nav.History(); len(history) != 2 || history[1].Path != "/news/launch" {
		t.Fatalf("expected push for a different item, got %+v", history)
	}
}

func TestCloseWithoutBackgroundFallsBackToListing(t *testing.T) {
	h := newHarness(t, "/case/alpha", modal.ContextCases)
	h.sync.DataReady(fixture())
	h.sync.Sync()

	h.sync.RequestClose(modal.CloseControl)
	h.timers.FireAll()

	replaces := h.replaces()
	if len(replaces) != 1 || replaces[0].Path != "/" {
		t.Fatalf("expected replace to listing root, got %+v", replaces)
	}
}

func TestShopItemOpensInPlaceFromCases(t *testing.T) {
	h := newHarness(t, "/", modal.ContextCases)
	h.sync.DataReady(fixture())

	h.sync.ClickCard(fixture().Shop[0])
	if status := h.sync.Status(); status.State != modal.StateOpen || status.Item.ID != "s1" {
		t.Fatalf("expected shop item open, got %+v", status)
	}
	if len(h.nav.History()) != 0 {
		t.Fatalf("expected no navigation for shop items, got %+v", h.nav.History())
	}

	h.sync.RequestClose(modal.CloseControl)
	h.timers.FireAll()
	if len(h.nav.History()) != 0 {
		t.Fatalf("expected close without navigation, got %+v", h.nav.History())
	}
}

func TestShopContextRoutesShopItems(t *testing.T) {
	h := newHarness(t, "/shop", modal.ContextShop)
	h.sync.DataReady(fixture())

	h.sync.ClickCard(fixture().Shop[0])
	history := h.nav.History()
	if len(history) != 1 || history[0].Path != "/shop/mug" {
		t.Fatalf("expected push to shop detail, got %+v", history)
	}
}

func TestLeavingDetailRouteForcesClosed(t *testing.T) {
	h := newHarness(t, "/", modal.ContextCases)
	h.sync.DataReady(fixture())

	h.sync.ClickCard(fixture().Cases[0])
	h.nav.Visit("/about")
	if status := h.sync.Status(); status.State != modal.StateClosed {
		t.Fatalf("expected closed after leaving detail, got %+v", status)
	}
	if pending := h.timers.Pending(); len(pending) != 0 {
		t.Fatalf("expected timers cancelled, got %v", pending)
	}

	h.sync.ClickCard(fixture().Cases[0])
	h.sync.RequestClose(modal.CloseOverlay)
	h.nav.Visit("/")
	if status := h.sync.Status(); status.State != modal.StateClosed {
		t.Fatalf("expected closed while closing, got %+v", status)
	}
	if pending := h.timers.Pending(); len(pending) != 0 {
		t.Fatalf("expected close timer cancelled, got %v", pending)
	}
	if replaces := h.replaces(); len(replaces) != 0 {
		t.Fatalf("expected no navigation back, got %+v", replaces)
	}
}

func TestScrollOnlyWhenCardRendered(t *testing.T) {
	h := newHarness(t, "/", modal.ContextCases)
	h.cards.rendered["c1"] = true
	h.sync.DataReady(fixture())

	h.sync.ClickCard(fixture().Cases[0])
	h.timers.FireNext()
	if len(h.cards.scrolls) != 1 || h.cards.scrolls[0] != (scroll{id: "c1", offset: 100}) {
		t.Fatalf("expected scroll to c1, got %+v", h.cards.scrolls)
	}

	h.sync.ClickCard(fixture().News[0])
	h.timers.FireAll()
	if len(h.cards.scrolls) != 1 {
		t.Fatalf("expected hidden card not scrolled, got %+v", h.cards.scrolls)
	}
}

func TestIgnoredEventsAndDispose(t *testing.T) {
	var observed []modal.State
	nav := modal.NewMemoryNavigator("/")
	timers := modal.NewManualTimers()
	sync := modal.New(nav,
		modal.WithTimers(timers),
		modal.WithObserver(func(status modal.Status) { observed = append(observed, status.State) }),
	)

	sync.RequestClose(modal.CloseEscape)
	if status := sync.Status(); status.State != modal.StateClosed || len(timers.Pending()) != 0 {
		t.Fatalf("expected close ignored while closed, got %+v", status)
	}
	if len(observed) != 0 {
		t.Fatalf("expected ignored events not observed, got %v", observed)
	}

	sync.DataReady(fixture())
	sync.ClickCard(fixture().Cases[0])
	sync.Dispose()
	if len(timers.Pending()) != 0 {
		t.Fatalf("expected dispose to cancel timers, got %v", timers.Pending())
	}
	sync.ClickCard(fixture().Cases[0])
	if status := sync.Status(); status.State != modal.StateClosed {
		t.Fatalf("expected disposed synchronizer to stay closed, got %+v", status)
	}
	if len(observed) == 0 || observed[len(observed)-1] != modal.StateClosed {
		t.Fatalf("unexpected observed states %v", observed)
	}
}

func TestTransitionTableHasUniquePairs(t *testing.T) {
	seen := map[string]bool{}
	for _, transition := range modal.Transitions() {
		key := string(transition.Event) + "/" + string(transition.From)
		if seen[key] {
			t.Fatalf("duplicate transition %s", key)
		}
		seen[key] = true
		if len(transition.To) == 0 {
			t.Fatalf("transition %s has no targets", key)
		}
	}
}

func TestResolveDeepLink(t *testing.T) {
	cat := fixture()
	table := routes.DefaultTable()

	match, _ := table.Match("/case/alpha")
	item, err := modal.ResolveDeepLink(modal.ContextCases, match, cat)
	if err != nil || item.ID != "c1" {
		t.Fatalf("expected alpha, got %+v %v", item, err)
	}

	match, _ = table.Match("/banner/alpha")
	if _, err := modal.ResolveDeepLink(modal.ContextCases, match, cat); !errors.Is(err, modal.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}

	match, _ = table.Match("/case/none")
	if _, err := modal.ResolveDeepLink(modal.ContextCases, match, cat); !errors.Is(err, modal.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	match, _ = table.Match("/")
	if _, err := modal.ResolveDeepLink(modal.ContextCases, match, cat); !errors.Is(err, modal.ErrNotDetailRoute) {
		t.Fatalf("expected ErrNotDetailRoute, got %v", err)
	}
}
