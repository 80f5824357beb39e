package listing

import "github.com/goliatone/go-showcase/internal/catalog"

// RowKind tells the renderer which grid a row belongs to.
type RowKind string

const (
	RowGeneral RowKind = "general"
	RowBanner  RowKind = "banner"
)

const (
	rowWidth       = 3
	bannerRowWidth = 2
	firstGroupSize = 3
	laterGroupSize = 6
)

// Row is one rendered grid row.
type Row struct {
	Kind  RowKind        `json:"kind"`
	Items []catalog.Item `json:"items"`
}

// ComposeRows interleaves the general pool (cases, news, shop in that order)
// with banners: 3 general items, up to 2 banners, then 6 general items as two
// rows of 3 followed by up to 2 banners, repeated until both pools are
// exhausted. Empty rows are never emitted and input order is preserved.
func ComposeRows(cases, news, shop, banners []catalog.Item) []Row {
	general := make([]catalog.Item, 0, len(cases)+len(news)+len(shop))
	general = append(general, cases...)
	general = append(general, news...)
	general = append(general, shop...)

	var rows []Row
	g, b := 0, 0
	first := true
	for g < len(general) || b < len(banners) {
		size := laterGroupSize
		if first {
			size = firstGroupSize
		}
		take := min(size, len(general)-g)
		group := general[g : g+take]
		g += take
		for len(group) > 0 {
			n := min(rowWidth, len(group))
			rows = append(rows, Row{Kind: RowGeneral, Items: cloneItems(group[:n])})
			group = group[n:]
		}

		n := min(bannerRowWidth, len(banners)-b)
		if n > 0 {
			rows = append(rows, Row{Kind: RowBanner, Items: cloneItems(banners[b : b+n])})
			b += n
		}
		first = false
	}
	return rows
}

// ComposeCatalog composes rows from a filtered catalog.
func ComposeCatalog(cat catalog.Catalog) []Row {
	return ComposeRows(cat.Cases, cat.News, cat.Shop, cat.Banners)
}

func cloneItems(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, len(items))
	copy(out, items)
	return out
}
