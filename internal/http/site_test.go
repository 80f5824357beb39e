package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-showcase/internal/catalog"
	snapshotcmd "github.com/goliatone/go-showcase/internal/commands/snapshot"
	"github.com/goliatone/go-showcase/internal/records"
	"github.com/goliatone/go-showcase/internal/team"
)

type stubSource struct {
	cat    catalog.Catalog
	team   []records.Record
	loaded bool
	failed bool
}

func (s *stubSource) Catalog() catalog.Catalog { return s.cat }
func (s *stubSource) Loaded() bool             { return s.loaded }
func (s *stubSource) Failed() bool             { return s.failed }

func (s *stubSource) Team(item catalog.Item) []team.Member {
	return team.Resolve(item.Record, s.team)
}

type stubRefresh struct {
	msgs []snapshotcmd.RefreshSnapshotCommand
	err  error
}

func (s *stubRefresh) Execute(_ context.Context, msg snapshotcmd.RefreshSnapshotCommand) error {
	s.msgs = append(s.msgs, msg)
	return s.err
}

func newSource() *stubSource {
	snapshot := catalog.Snapshot{
		Cases: []records.Record{
			{"id": 1, "title": "Alpha", "tags": `{"selectedItems":[{"label":"Сайт"}]}`, "team": `{"ids":["m1"]}`},
			{"id": 2, "title": "Beta", "tags": `{"selectedItems":[{"label":"AR"}]}`},
			{"id": 3, "title": "Store item", "is_shop": true, "price": "1500"},
		},
		News:    []records.Record{{"id": "n1", "title": "Launch"}},
		Banners: []records.Record{{"id": "b1", "title": "Promo"}},
	}
	return &stubSource{
		cat:    catalog.NewNormalizer().Build(snapshot),
		team:   []records.Record{{"id": "m1", "name": "Анна", "role": "Art director"}},
		loaded: true,
	}
}

func serve(t *testing.T, handler http.Handler, method, target string, body []byte, expected int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != expected {
		t.Fatalf("%s %s: expected status %d got %d: %s", method, target, expected, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func TestListingEndpointAppliesFilters(t *testing.T) {
	handler := NewSiteAPI(newSource()).Handler()

	rec := serve(t, handler, http.MethodGet, "/api/listing", nil, http.StatusOK)
	var all struct {
		Total int `json:"total"`
		Rows  []struct {
			Kind  string         `json:"kind"`
			Items []catalog.Item `json:"items"`
		} `json:"rows"`
	}
	decodeBody(t, rec, &all)
	if all.Total != 5 {
		t.Fatalf("expected 5 items, got %d", all.Total)
	}
	if len(all.Rows) != 3 || len(all.Rows[0].Items) != 3 || all.Rows[1].Kind != "banner" || len(all.Rows[2].Items) != 1 {
		t.Fatalf("unexpected rows %+v", all.Rows)
	}
	if rec.Header().Get(headerRequestID) == "" {
		t.Fatal("expected request id header")
	}

	rec = serve(t, handler, http.MethodGet, "/api/listing?category=all&type=news", nil, http.StatusOK)
	var news struct {
		Total      int  `json:"total"`
		TypeActive bool `json:"type_active"`
	}
	decodeBody(t, rec, &news)
	if news.Total != 1 || !news.TypeActive {
		t.Fatalf("expected news filter, got %+v", news)
	}

	rec = serve(t, handler, http.MethodGet, "/api/listing?category=digital&tag=%D0%A1%D0%B0%D0%B9%D1%82", nil, http.StatusOK)
	var tagged struct {
		Total int `json:"total"`
	}
	decodeBody(t, rec, &tagged)
	if tagged.Total != 1 {
		t.Fatalf("expected one tagged item, got %d", tagged.Total)
	}
}

func TestListingUnavailableBeforeLoad(t *testing.T) {
	source := newSource()
	source.loaded = false
	handler := NewSiteAPI(source).Handler()
	serve(t, handler, http.MethodGet, "/api/listing", nil, http.StatusServiceUnavailable)

	rec := serve(t, handler, http.MethodGet, "/healthz", nil, http.StatusOK)
	var health healthResponse
	decodeBody(t, rec, &health)
	if health.Status != "ok" || health.Loaded {
		t.Fatalf("unexpected health %+v", health)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	handler := NewSiteAPI(newSource()).Handler()
	rec := serve(t, handler, http.MethodGet, "/api/categories", nil, http.StatusOK)
	var resp categoriesResponse
	decodeBody(t, rec, &resp)
	if len(resp.Categories) == 0 || resp.Categories[0].Key != "all" {
		t.Fatalf("expected all category first, got %+v", resp.Categories)
	}
	if len(resp.Types) != 3 {
		t.Fatalf("expected three type options, got %+v", resp.Types)
	}
}

func TestItemDetailEndpoint(t *testing.T) {
	handler := NewSiteAPI(newSource()).Handler()

	rec := serve(t, handler, http.MethodGet, "/api/items/case/alpha", nil, http.StatusOK)
	var detail detailResponse
	decodeBody(t, rec, &detail)
	if detail.Item.Title != "Alpha" || detail.Path != "/case/alpha" || detail.Listing != "/" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if len(detail.Team) != 1 || detail.Team[0].Name != "Анна" {
		t.Fatalf("expected resolved team, got %+v", detail.Team)
	}

	rec = serve(t, handler, http.MethodGet, "/api/items/news/alpha", nil, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("expected redirect to listing root, got %q", got)
	}
	rec = serve(t, handler, http.MethodGet, "/api/items/case/missing", nil, http.StatusSeeOther)
	var redirect errorResponse
	decodeBody(t, rec, &redirect)
	if redirect.Redirect != "/" {
		t.Fatalf("expected redirect payload, got %+v", redirect)
	}
}

func TestBlogAndShopDetailEndpoints(t *testing.T) {
	handler := NewSiteAPI(newSource()).Handler()

	rec := serve(t, handler, http.MethodGet, "/api/blog/launch", nil, http.StatusOK)
	var blog detailResponse
	decodeBody(t, rec, &blog)
	if blog.Item.Kind != catalog.KindNews || blog.Path != "/blog/launch" || blog.Listing != "/blog" {
		t.Fatalf("unexpected blog detail %+v", blog)
	}
	if blog.Team == nil {
		t.Fatal("expected empty team slice")
	}

	rec = serve(t, handler, http.MethodGet, "/api/shop/store-item", nil, http.StatusOK)
	var shop detailResponse
	decodeBody(t, rec, &shop)
	if shop.Item.Kind != catalog.KindShop || shop.Item.Price != 1500 {
		t.Fatalf("unexpected shop detail %+v", shop.Item)
	}

	rec = serve(t, handler, http.MethodGet, "/api/blog/alpha", nil, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != "/blog" {
		t.Fatalf("expected blog listing redirect, got %q", got)
	}
	rec = serve(t, handler, http.MethodGet, "/api/shop/alpha", nil, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != "/shop" {
		t.Fatalf("expected shop listing redirect, got %q", got)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	refresh := &stubRefresh{}
	handler := NewSiteAPI(newSource(), WithRefreshCommand(refresh), WithBasePath("/v1")).Handler()

	rec := serve(t, handler, http.MethodPost, "/v1/snapshot/refresh", nil, http.StatusOK)
	var resp refreshResponse
	decodeBody(t, rec, &resp)
	if resp.Status != "refreshed" || resp.Items != 5 {
		t.Fatalf("unexpected refresh response %+v", resp)
	}
	serve(t, handler, http.MethodPost, "/v1/snapshot/refresh", []byte(`{"reason":"publish","reload":false}`), http.StatusOK)
	if len(refresh.msgs) != 2 || !refresh.msgs[0].Reload || refresh.msgs[1].Reload || refresh.msgs[1].Reason != "publish" {
		t.Fatalf("unexpected messages %+v", refresh.msgs)
	}

	serve(t, handler, http.MethodPost, "/v1/snapshot/refresh", []byte(`{broken`), http.StatusBadRequest)
	serve(t, handler, http.MethodGet, "/v1/snapshot/refresh", nil, http.StatusMethodNotAllowed)

	refresh.err = goerrors.Wrap(snapshotcmd.ErrReloadFailed, goerrors.CategoryCommand, "command execution failed")
	serve(t, handler, http.MethodPost, "/v1/snapshot/refresh", nil, http.StatusBadGateway)
}

func TestRefreshWithoutCommand(t *testing.T) {
	handler := NewSiteAPI(newSource()).Handler()
	serve(t, handler, http.MethodPost, "/api/snapshot/refresh", nil, http.StatusServiceUnavailable)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: goerrors.Wrap(errors.New("bad"), goerrors.CategoryValidation, "invalid"), status: http.StatusBadRequest},
		{name: "external", err: goerrors.Wrap(errors.New("down"), goerrors.CategoryExternal, "upstream"), status: http.StatusBadGateway},
		{name: "not found", err: goerrors.Wrap(errors.New("gone"), goerrors.CategoryNotFound, "missing"), status: http.StatusNotFound},
		{name: "plain", err: errors.New("boom"), status: http.StatusInternalServerError},
		{name: "nil", err: nil, status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapError(tc.err)
			if status != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, status)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		base, suffix, expected string
	}{
		{"", "", "/"},
		{"/api/", "listing", "/api/listing"},
		{"api", "/blog/{slug}", "/api/blog/{slug}"},
		{"/api", "", "/api"},
	}
	for _, tc := range cases {
		if got := joinPath(tc.base, tc.suffix); got != tc.expected {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", tc.base, tc.suffix, got, tc.expected)
		}
	}
}
