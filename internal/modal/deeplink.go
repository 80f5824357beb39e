package modal

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/routes"
)

// Context selects which detail route and lookup collection the modal uses.
type Context string

const (
	// ContextCases addresses items by (kind, slug) across every collection.
	ContextCases Context = "cases"
	// ContextBlog addresses news items by slug.
	ContextBlog Context = "blog"
	// ContextShop addresses shop items by slug.
	ContextShop Context = "shop"
)

var (
	ErrNotDetailRoute = errors.New("modal: path is not a detail route")
	ErrItemNotFound   = errors.New("modal: item not found")
	ErrKindMismatch   = errors.New("modal: item kind does not match path")
)

// DetailRoute returns the route name of the context's detail path.
func (c Context) DetailRoute() string {
	switch c {
	case ContextBlog:
		return routes.RouteBlogDetail
	case ContextShop:
		return routes.RouteShopDetail
	default:
		return routes.RouteDetail
	}
}

// ListingRoute returns the route name of the context's listing root.
func (c Context) ListingRoute() string {
	switch c {
	case ContextBlog:
		return routes.RouteBlog
	case ContextShop:
		return routes.RouteShop
	default:
		return routes.RouteListing
	}
}

// Routable reports whether opening item in this context changes the location.
// Shop items open in place from the cases listing.
func (c Context) Routable(item catalog.Item) bool {
	if c == ContextCases || c == "" {
		return item.Kind != catalog.KindShop
	}
	return true
}

// Collection returns the items a context looks slugs up in.
func (c Context) Collection(cat catalog.Catalog) []catalog.Item {
	switch c {
	case ContextBlog:
		return cat.News
	case ContextShop:
		return cat.Shop
	default:
		return cat.All()
	}
}

// DetailParams returns the route parameters addressing item in this context.
func (c Context) DetailParams(item catalog.Item) map[string]string {
	params := map[string]string{routes.ParamSlug: item.Slug}
	if c.DetailRoute() == routes.RouteDetail {
		params[routes.ParamKind] = string(item.Kind)
	}
	return params
}

// ResolveDeepLink looks up the item addressed by match. Unknown slugs and kind
// mismatches are errors; callers recover by redirecting to the listing root.
func ResolveDeepLink(mode Context, match routes.Match, cat catalog.Catalog) (catalog.Item, error) {
	if match.Route != mode.DetailRoute() {
		return catalog.Item{}, fmt.Errorf("%w: %s", ErrNotDetailRoute, match.Route)
	}
	slug := match.Param(routes.ParamSlug)
	item, ok := catalog.FindBySlug(mode.Collection(cat), slug)
	if !ok {
		return catalog.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, slug)
	}
	if mode.DetailRoute() == routes.RouteDetail {
		if kind := match.Param(routes.ParamKind); kind != string(item.Kind) {
			return catalog.Item{}, fmt.Errorf("%w: %s is %s, not %s", ErrKindMismatch, slug, item.Kind, kind)
		}
	}
	return item, nil
}
