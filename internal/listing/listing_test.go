package listing_test

import (
	"fmt"
	"net/url"
	"reflect"
	"testing"

	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/listing"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
)

func items(kind catalog.Kind, n int, tags ...string) []catalog.Item {
	out := make([]catalog.Item, n)
	for i := range out {
		out[i] = catalog.Item{
			ID:   fmt.Sprintf("%s-%d", kind, i+1),
			Kind: kind,
			Tags: tags,
		}
	}
	return out
}

func rowShape(rows []listing.Row) ([]int, []listing.RowKind) {
	sizes := make([]int, len(rows))
	kinds := make([]listing.RowKind, len(rows))
	for i, row := range rows {
		sizes[i] = len(row.Items)
		kinds[i] = row.Kind
	}
	return sizes, kinds
}

func TestComposeRowsNineGeneralFourBanners(t *testing.T) {
	cases := items(catalog.KindCase, 5)
	news := items(catalog.KindNews, 2)
	shop := items(catalog.KindShop, 2)
	banners := items(catalog.KindBanner, 4)

	rows := listing.ComposeRows(cases, news, shop, banners)
	sizes, kinds := rowShape(rows)

	if want := []int{3, 2, 3, 3, 2}; !reflect.DeepEqual(sizes, want) {
		t.Fatalf("expected sizes %v, got %v", want, sizes)
	}
	wantKinds := []listing.RowKind{listing.RowGeneral, listing.RowBanner, listing.RowGeneral, listing.RowGeneral, listing.RowBanner}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Fatalf("expected kinds %v, got %v", wantKinds, kinds)
	}

	var order []string
	for _, row := range rows {
		if row.Kind != listing.RowGeneral {
			continue
		}
		for _, item := range row.Items {
			order = append(order, item.ID)
		}
	}
	want := []string{"case-1", "case-2", "case-3", "case-4", "case-5", "news-1", "news-2", "shop-1", "shop-2"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("expected general order %v, got %v", want, order)
	}
}

func TestComposeRowsWithoutBanners(t *testing.T) {
	rows := listing.ComposeRows(items(catalog.KindCase, 7), nil, nil, nil)
	sizes, kinds := rowShape(rows)

	if want := []int{3, 3, 1}; !reflect.DeepEqual(sizes, want) {
		t.Fatalf("expected sizes %v, got %v", want, sizes)
	}
	for _, kind := range kinds {
		if kind != listing.RowGeneral {
			t.Fatalf("expected only general rows, got %v", kinds)
		}
	}
}

func TestComposeRowsRhythm(t *testing.T) {
	cases := []struct {
		name    string
		general int
		banners int
		sizes   []int
	}{
		{"empty", 0, 0, nil},
		{"banners only", 0, 5, []int{2, 2, 1}},
		{"trailing single banner", 3, 3, []int{3, 2, 1}},
		{"two full cycles", 15, 6, []int{3, 2, 3, 3, 2, 3, 3, 2}},
		{"short later group", 8, 0, []int{3, 3, 2}},
		{"remainder below a row", 2, 1, []int{2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := listing.ComposeRows(items(catalog.KindCase, tc.general), nil, nil, items(catalog.KindBanner, tc.banners))
			sizes, _ := rowShape(rows)
			if len(sizes) == 0 {
				sizes = nil
			}
			if !reflect.DeepEqual(sizes, tc.sizes) {
				t.Fatalf("expected sizes %v, got %v", tc.sizes, sizes)
			}
			for _, row := range rows {
				if len(row.Items) == 0 {
					t.Fatal("empty row emitted")
				}
				if row.Kind == listing.RowBanner && len(row.Items) > 2 {
					t.Fatalf("banner row too wide: %d", len(row.Items))
				}
				if row.Kind == listing.RowGeneral && len(row.Items) > 3 {
					t.Fatalf("general row too wide: %d", len(row.Items))
				}
			}
		})
	}
}

func TestFilterToggleSemantics(t *testing.T) {
	var state listing.State

	state = state.SelectTag("T")
	if state.Tag != "T" {
		t.Fatalf("expected tag T, got %q", state.Tag)
	}
	if again := state.SelectTag("T"); again.Tag != "" {
		t.Fatalf("expected tag toggle off, got %q", again.Tag)
	}
	if replaced := state.SelectTag("U"); replaced.Tag != "U" {
		t.Fatalf("expected tag U, got %q", replaced.Tag)
	}

	state = listing.State{}.SelectCategory("all").SelectType("news")
	if state.Type != "news" {
		t.Fatalf("expected type news, got %q", state.Type)
	}
	if toggled := state.SelectType("news"); toggled.Type != "" {
		t.Fatalf("expected type toggle off, got %q", toggled.Type)
	}
}

func TestSelectCategoryResets(t *testing.T) {
	state := listing.State{Category: "all", Type: "case", Tag: "Сайт"}

	if next := state.SelectCategory("all"); !next.IsZero() {
		t.Fatalf("expected full reset, got %+v", next)
	}

	next := state.SelectCategory("digital")
	if next.Type != "" || next.Category != "digital" || next.Tag != "Сайт" {
		t.Fatalf("expected type cleared only, got %+v", next)
	}
}

func TestApplyFilters(t *testing.T) {
	pool := []catalog.Item{
		{ID: "1", Kind: catalog.KindCase, Tags: []string{"Сайт"}},
		{ID: "2", Kind: catalog.KindNews, Tags: []string{"Сайт"}},
		{ID: "3", Kind: catalog.KindCase, Tags: []string{"сайт"}},
		{ID: "4", Kind: catalog.KindShop},
	}

	ids := func(items []catalog.Item) []string {
		out := []string{}
		for _, item := range items {
			out = append(out, item.ID)
		}
		return out
	}

	cases := []struct {
		name  string
		state listing.State
		want  []string
	}{
		{"no filter", listing.State{}, []string{"1", "2", "3", "4"}},
		{"type under all", listing.State{Category: "all", Type: "case"}, []string{"1", "3"}},
		{"type ignored outside all", listing.State{Category: "digital", Type: "case"}, []string{"1", "2", "3", "4"}},
		{"tag is case sensitive", listing.State{Tag: "Сайт"}, []string{"1", "2"}},
		{"type and tag", listing.State{Category: "all", Type: "case", Tag: "Сайт"}, []string{"1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := tc.state.Apply(pool)
			if got := ids(once); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			twice := tc.state.Apply(once)
			if !reflect.DeepEqual(ids(twice), ids(once)) {
				t.Fatalf("filter not idempotent: %v vs %v", ids(twice), ids(once))
			}
		})
	}
}

func TestAvailableTags(t *testing.T) {
	table := listing.DefaultTable()

	if tags := table.AvailableTags(listing.State{}); len(tags) != 0 {
		t.Fatalf("expected no tags without category, got %v", tags)
	}
	if tags := table.AvailableTags(listing.State{Category: "events"}); len(tags) != 0 {
		t.Fatalf("expected no tags for tagless category, got %v", tags)
	}
	if tags := table.AvailableTags(listing.State{Category: "unknown"}); len(tags) != 0 {
		t.Fatalf("expected no tags for unknown category, got %v", tags)
	}
	want := []string{"Сайт", "Лендинг", "Приложение"}
	if tags := table.AvailableTags(listing.State{Category: "digital"}); !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
}

func TestNewTableSkipsInvalidEntries(t *testing.T) {
	table := listing.NewTable(runtimeconfig.ListingConfig{
		Categories: []runtimeconfig.CategoryConfig{
			{Key: "all"},
			{Key: " "},
			{Key: "all", Label: "dup"},
			{Key: "print", Tags: []string{"Плакат", " "}},
		},
		Types: []runtimeconfig.TypeConfig{{Kind: "case"}, {Kind: "video"}},
	})

	categories := table.Categories()
	if len(categories) != 2 || categories[0].Label != "all" || categories[1].Key != "print" {
		t.Fatalf("unexpected categories %+v", categories)
	}
	if !reflect.DeepEqual(categories[1].Tags, []string{"Плакат"}) {
		t.Fatalf("unexpected tags %v", categories[1].Tags)
	}
	if types := table.Types(); len(types) != 1 || types[0].Kind != catalog.KindCase {
		t.Fatalf("unexpected types %+v", types)
	}
}

func TestParseStateRoundTripsQuery(t *testing.T) {
	table := listing.DefaultTable()

	state := listing.ParseState(url.Values{
		"category": {"all"},
		"type":     {"News"},
		"tag":      {"AR"},
	}, table)
	if state != (listing.State{Category: "all", Type: "news", Tag: "AR"}) {
		t.Fatalf("unexpected state %+v", state)
	}
	if parsed := listing.ParseState(state.Query(), table); parsed != state {
		t.Fatalf("expected %+v, got %+v", state, parsed)
	}

	dropped := listing.ParseState(url.Values{"category": {"digital"}, "type": {"case"}}, table)
	if dropped.Type != "" {
		t.Fatalf("expected type dropped outside all, got %+v", dropped)
	}
	unknown := listing.ParseState(url.Values{"category": {"nope"}, "type": {"video"}}, table)
	if !unknown.IsZero() {
		t.Fatalf("expected zero state, got %+v", unknown)
	}
}

func TestEngineView(t *testing.T) {
	engine := listing.NewEngine(nil)
	cat := catalog.Catalog{
		Cases:   items(catalog.KindCase, 4, "AR"),
		News:    items(catalog.KindNews, 1),
		Banners: items(catalog.KindBanner, 1),
	}

	view := engine.View(cat, listing.State{Category: "3d", Tag: "AR"})
	if view.Total != 4 {
		t.Fatalf("expected 4 items, got %d", view.Total)
	}
	sizes, _ := rowShape(view.Rows)
	if !reflect.DeepEqual(sizes, []int{3, 1}) {
		t.Fatalf("unexpected row sizes %v", sizes)
	}
	if len(view.AvailableTags) != 3 || view.TypeActive {
		t.Fatalf("unexpected view %+v", view)
	}

	empty := engine.View(catalog.Catalog{}, listing.State{})
	if empty.Rows == nil || len(empty.Rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", empty.Rows)
	}
}
