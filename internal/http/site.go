package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-showcase/internal/catalog"
	snapshotcmd "github.com/goliatone/go-showcase/internal/commands/snapshot"
	"github.com/goliatone/go-showcase/internal/listing"
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/modal"
	"github.com/goliatone/go-showcase/internal/routes"
	"github.com/goliatone/go-showcase/internal/team"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const defaultBasePath = "/api"

// CatalogSource provides the current snapshot. listview.Session satisfies it.
type CatalogSource interface {
	Catalog() catalog.Catalog
	Loaded() bool
	Failed() bool
	Team(item catalog.Item) []team.Member
}

// SiteAPI registers the public showcase endpoints.
type SiteAPI struct {
	basePath string
	source   CatalogSource
	engine   *listing.Engine
	routes   *routes.Table
	refresh  command.Commander[snapshotcmd.RefreshSnapshotCommand]
	logger   interfaces.Logger
}

// SiteOption mutates the SiteAPI configuration.
type SiteOption func(*SiteAPI)

// NewSiteAPI constructs a SiteAPI reading from source.
func NewSiteAPI(source CatalogSource, opts ...SiteOption) *SiteAPI {
	api := &SiteAPI{
		basePath: defaultBasePath,
		source:   source,
		engine:   listing.NewEngine(nil),
		routes:   routes.DefaultTable(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) SiteOption {
	return func(api *SiteAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithEngine sets the listing engine used to compose views.
func WithEngine(engine *listing.Engine) SiteOption {
	return func(api *SiteAPI) {
		if engine != nil {
			api.engine = engine
		}
	}
}

// WithRoutes sets the route table used for canonical and redirect paths.
func WithRoutes(table *routes.Table) SiteOption {
	return func(api *SiteAPI) {
		if table != nil {
			api.routes = table
		}
	}
}

// WithRefreshCommand wires the snapshot refresh command.
func WithRefreshCommand(handler command.Commander[snapshotcmd.RefreshSnapshotCommand]) SiteOption {
	return func(api *SiteAPI) {
		api.refresh = handler
	}
}

// WithLogger injects the logger used for request diagnostics.
func WithLogger(logger interfaces.Logger) SiteOption {
	return func(api *SiteAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts every endpoint on mux.
func (api *SiteAPI) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(api.basePath, "listing"), api.handleListing)
	mux.HandleFunc("GET "+joinPath(api.basePath, "categories"), api.handleCategories)
	mux.HandleFunc("GET "+joinPath(api.basePath, "items/{kind}/{slug}"), api.handleItemDetail)
	mux.HandleFunc("GET "+joinPath(api.basePath, "blog/{slug}"), api.handleBlogDetail)
	mux.HandleFunc("GET "+joinPath(api.basePath, "shop/{slug}"), api.handleShopDetail)
	mux.HandleFunc("POST "+joinPath(api.basePath, "snapshot/refresh"), api.handleRefresh)
	mux.HandleFunc("GET /healthz", api.handleHealth)
}

// Handler returns a mux with every endpoint mounted behind request logging.
func (api *SiteAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return withRequestLogging(api.logger, mux)
}

type listingResponse struct {
	listing.View
	Failed bool `json:"failed"`
}

type categoriesResponse struct {
	Categories []listing.Category   `json:"categories"`
	Types      []listing.TypeOption `json:"types"`
}

type detailResponse struct {
	Item    catalog.Item  `json:"item"`
	Team    []team.Member `json:"team"`
	Path    string        `json:"path"`
	Listing string        `json:"listing"`
}

type refreshPayload struct {
	Reason string `json:"reason,omitempty"`
	Reload *bool  `json:"reload,omitempty"`
}

type refreshResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

type healthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
	Failed bool   `json:"failed"`
}

func (api *SiteAPI) handleListing(w http.ResponseWriter, r *http.Request) {
	if !api.ready(w) {
		return
	}
	state := listing.ParseState(r.URL.Query(), api.engine.Table())
	view := api.engine.View(api.source.Catalog(), state)
	writeJSON(w, http.StatusOK, listingResponse{View: view, Failed: api.source.Failed()})
}

func (api *SiteAPI) handleCategories(w http.ResponseWriter, _ *http.Request) {
	table := api.engine.Table()
	writeJSON(w, http.StatusOK, categoriesResponse{
		Categories: table.Categories(),
		Types:      table.Types(),
	})
}

func (api *SiteAPI) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	api.serveDetail(w, r, modal.ContextCases, map[string]string{
		routes.ParamKind: r.PathValue("kind"),
		routes.ParamSlug: r.PathValue("slug"),
	})
}

func (api *SiteAPI) handleBlogDetail(w http.ResponseWriter, r *http.Request) {
	api.serveDetail(w, r, modal.ContextBlog, map[string]string{routes.ParamSlug: r.PathValue("slug")})
}

func (api *SiteAPI) handleShopDetail(w http.ResponseWriter, r *http.Request) {
	api.serveDetail(w, r, modal.ContextShop, map[string]string{routes.ParamSlug: r.PathValue("slug")})
}

func (api *SiteAPI) serveDetail(w http.ResponseWriter, r *http.Request, mode modal.Context, params map[string]string) {
	if !api.ready(w) {
		return
	}
	listingPath, err := api.routes.Build(mode.ListingRoute(), nil)
	if err != nil {
		writeError(w, err)
		return
	}

	match := routes.Match{Route: mode.DetailRoute(), Params: params}
	item, err := modal.ResolveDeepLink(mode, match, api.source.Catalog())
	if err != nil {
		logging.WithRouteContext(logging.ForContext(api.logger, r.Context()), match.Route, params[routes.ParamKind], params[routes.ParamSlug]).
			Info("http.deeplink.invalid", "error", err, "redirect", listingPath)
		writeRedirect(w, listingPath, err)
		return
	}

	path, err := api.routes.Build(mode.DetailRoute(), mode.DetailParams(item))
	if err != nil {
		writeError(w, err)
		return
	}
	members := api.source.Team(item)
	if members == nil {
		members = []team.Member{}
	}
	writeJSON(w, http.StatusOK, detailResponse{
		Item:    item,
		Team:    members,
		Path:    path,
		Listing: listingPath,
	})
}

func (api *SiteAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if api.refresh == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload refreshPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	msg := snapshotcmd.RefreshSnapshotCommand{Reason: payload.Reason, Reload: true}
	if payload.Reload != nil {
		msg.Reload = *payload.Reload
	}
	if err := api.refresh.Execute(requestContext(r), msg); err != nil {
		writeError(w, err)
		return
	}
	items := 0
	if api.source != nil {
		items = api.source.Catalog().Len()
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed", Items: items})
}

func (api *SiteAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	if api.source != nil {
		resp.Loaded = api.source.Loaded()
		resp.Failed = api.source.Failed()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *SiteAPI) ready(w http.ResponseWriter) bool {
	if api.source == nil || !api.source.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable", Message: "snapshot not loaded"})
		return false
	}
	return true
}

// requestContext keeps request values but ignores client disconnects.
func requestContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
