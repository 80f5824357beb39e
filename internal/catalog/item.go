package catalog

import (
	"strings"
	"time"

	"github.com/goliatone/go-showcase/internal/records"
)

// Kind identifies the collection an item belongs to.
type Kind string

const (
	KindCase   Kind = "case"
	KindBanner Kind = "banner"
	KindNews   Kind = "news"
	KindShop   Kind = "shop"
)

// Kinds lists every item kind.
var Kinds = []Kind{KindCase, KindBanner, KindNews, KindShop}

// ParseKind maps a path segment or filter value onto a Kind.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindCase:
		return KindCase, true
	case KindBanner:
		return KindBanner, true
	case KindNews:
		return KindNews, true
	case KindShop:
		return KindShop, true
	default:
		return "", false
	}
}

// Item is the normalized, render-ready form of a content record.
type Item struct {
	ID              string         `json:"id"`
	Kind            Kind           `json:"kind"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DescriptionHTML string         `json:"description_html,omitempty"`
	Tags            []string       `json:"tags"`
	PreviewImage    string         `json:"preview_image"`
	LogoImage       string         `json:"logo_image"`
	Price           float64        `json:"price,omitempty"`
	PriceLabel      string         `json:"price_label,omitempty"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	Slug            string         `json:"slug"`
	Link            string         `json:"link,omitempty"`
	Images          []string       `json:"images"`
	Record          records.Record `json:"-"`

	untitled bool
}

// HasTag reports whether tag is one of the item's tags (exact match).
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Snapshot holds the raw collections fetched for one list view mount.
type Snapshot struct {
	Cases   []records.Record
	News    []records.Record
	Banners []records.Record
	Team    []records.Record
}

// Catalog is the normalized form of a Snapshot. Case records flagged for
// commerce are moved to Shop.
type Catalog struct {
	Cases   []Item
	News    []Item
	Shop    []Item
	Banners []Item
}

// All returns cases, news, shop items, and banners in that order.
func (c Catalog) All() []Item {
	out := make([]Item, 0, len(c.Cases)+len(c.News)+len(c.Shop)+len(c.Banners))
	out = append(out, c.Cases...)
	out = append(out, c.News...)
	out = append(out, c.Shop...)
	out = append(out, c.Banners...)
	return out
}

// Len returns the number of items across every collection.
func (c Catalog) Len() int {
	return len(c.Cases) + len(c.News) + len(c.Shop) + len(c.Banners)
}

// FindBySlug returns the first item in items whose slug matches.
func FindBySlug(items []Item, slug string) (Item, bool) {
	for _, item := range items {
		if item.Slug == slug {
			return item, true
		}
	}
	return Item{}, false
}
