package routes

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	urlkit "github.com/goliatone/go-urlkit"
)

// Route names registered in the site group.
const (
	RouteListing    = "listing"
	RouteDetail     = "detail"
	RouteBlog       = "blog"
	RouteBlogDetail = "blog_detail"
	RouteShop       = "shop"
	RouteShopDetail = "shop_detail"
)

// Path parameter names.
const (
	ParamKind = "kind"
	ParamSlug = "slug"
)

const fallbackBaseURL = "http://showcase.invalid"

var (
	ErrRouteUnknown = errors.New("routes: unknown route")
	ErrParamMissing = errors.New("routes: missing route parameter")
)

// Match is a recognized path.
type Match struct {
	Route  string
	Params map[string]string
}

// Param returns the named path parameter.
func (m Match) Param(name string) string {
	return m.Params[name]
}

// IsDetail reports whether the match targets one of the detail routes.
func (m Match) IsDetail() bool {
	switch m.Route {
	case RouteDetail, RouteBlogDetail, RouteShopDetail:
		return true
	default:
		return false
	}
}

type pattern struct {
	route    string
	segments []string
	literals int
	order    int
}

// Table builds and recognizes site paths. Building goes through a go-urlkit
// route manager so hosts can share one route configuration.
type Table struct {
	manager  *urlkit.RouteManager
	group    string
	prefix   string
	paths    map[string]string
	patterns []pattern
}

// NewTable registers the configured routes.
func NewTable(cfg runtimeconfig.RoutesConfig) (*Table, error) {
	group := strings.TrimSpace(cfg.Group)
	if group == "" {
		group = "site"
	}
	paths := map[string]string{
		RouteListing:    cfg.Listing,
		RouteDetail:     cfg.Detail,
		RouteBlog:       cfg.BlogListing,
		RouteBlogDetail: cfg.BlogDetail,
		RouteShop:       cfg.ShopListing,
		RouteShopDetail: cfg.ShopDetail,
	}
	for name, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			delete(paths, name)
			continue
		}
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrRoutePathInvalid, name)
		}
		paths[name] = path
	}
	if _, ok := paths[RouteListing]; !ok {
		paths[RouteListing] = "/"
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = fallbackBaseURL
	}
	prefix := ""
	if parsed, err := url.Parse(baseURL); err == nil {
		prefix = strings.TrimRight(parsed.Path, "/")
	}

	t := &Table{
		manager: urlkit.NewRouteManager(&urlkit.Config{
			Groups: []urlkit.GroupConfig{{
				Name:    group,
				BaseURL: baseURL,
				Paths:   paths,
			}},
		}),
		group:  group,
		prefix: prefix,
		paths:  paths,
	}
	t.compile()
	return t, nil
}

// DefaultTable returns the table for the default route configuration.
func DefaultTable() *Table {
	table, err := NewTable(runtimeconfig.DefaultConfig().Routes)
	if err != nil {
		panic(err)
	}
	return table
}

func (t *Table) compile() {
	order := []string{RouteListing, RouteDetail, RouteBlog, RouteBlogDetail, RouteShop, RouteShopDetail}
	for i, name := range order {
		path, ok := t.paths[name]
		if !ok {
			continue
		}
		p := pattern{route: name, segments: split(path), order: i}
		for _, seg := range p.segments {
			if !strings.HasPrefix(seg, ":") {
				p.literals++
			}
		}
		t.patterns = append(t.patterns, p)
	}
	sort.SliceStable(t.patterns, func(i, j int) bool {
		if t.patterns[i].literals != t.patterns[j].literals {
			return t.patterns[i].literals > t.patterns[j].literals
		}
		return t.patterns[i].order < t.patterns[j].order
	})
}

// Build returns the site path for route with params.
func (t *Table) Build(route string, params map[string]string) (string, error) {
	path, ok := t.paths[route]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteUnknown, route)
	}
	for _, seg := range split(path) {
		if name, isParam := strings.CutPrefix(seg, ":"); isParam && strings.TrimSpace(params[name]) == "" {
			return "", fmt.Errorf("%w: %s on %s", ErrParamMissing, name, route)
		}
	}

	builder, err := t.builder(route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	built, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("routes: build %s: %w", route, err)
	}
	parsed, err := url.Parse(built)
	if err != nil {
		return "", fmt.Errorf("routes: parse %s: %w", route, err)
	}
	out := parsed.EscapedPath()
	if out == "" {
		out = "/"
	}
	if parsed.RawQuery != "" {
		out += "?" + parsed.RawQuery
	}
	return out, nil
}

func (t *Table) builder(route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: urlkit builder panic: %v", rec)
		}
	}()
	builder = t.manager.Group(t.group).Builder(route)
	return builder, err
}

// ListingRoot returns the listing path.
func (t *Table) ListingRoot() string {
	path, err := t.Build(RouteListing, nil)
	if err != nil {
		return "/"
	}
	return path
}

// Match recognizes path. Routes with more literal segments win over more
// generic ones, so "/blog/x" matches blog_detail rather than detail.
func (t *Table) Match(path string) (Match, bool) {
	if parsed, err := url.Parse(path); err == nil {
		path = parsed.Path
	}
	if t.prefix != "" {
		trimmed, ok := strings.CutPrefix(path, t.prefix)
		if !ok {
			return Match{}, false
		}
		path = trimmed
	}
	segments := split(path)
	for _, p := range t.patterns {
		if params, ok := p.match(segments); ok {
			return Match{Route: p.route, Params: params}, true
		}
	}
	return Match{}, false
}

func (p pattern) match(segments []string) (map[string]string, bool) {
	if len(segments) != len(p.segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range p.segments {
		if name, isParam := strings.CutPrefix(seg, ":"); isParam {
			value, err := url.PathUnescape(segments[i])
			if err != nil || value == "" {
				return nil, false
			}
			params[name] = value
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
