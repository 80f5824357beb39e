package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-showcase/internal/identity"
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/media"
	"github.com/goliatone/go-showcase/internal/records"
	"github.com/goliatone/go-showcase/internal/richtext"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// Option customises a Normalizer.
type Option func(*Normalizer)

// WithFields overrides the field candidates consulted while normalizing.
func WithFields(fields runtimeconfig.FieldsConfig) Option {
	return func(n *Normalizer) {
		n.fields = fields
	}
}

// WithUntitledLabel overrides the title used when a record has none.
func WithUntitledLabel(label string) Option {
	return func(n *Normalizer) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			n.untitled = trimmed
		}
	}
}

// WithMaxTags caps the number of tags kept for case-like records.
func WithMaxTags(max int) Option {
	return func(n *Normalizer) {
		n.maxTags = max
	}
}

// WithMedia wires the resolver used for image URLs and image detection.
func WithMedia(resolver *media.Resolver) Option {
	return func(n *Normalizer) {
		if resolver != nil {
			n.images = resolver
			n.isImage = resolver.IsImage
		}
	}
}

// WithImageResolver wires an arbitrary image resolver. Image detection for
// field scans keeps the default heuristics.
func WithImageResolver(resolver interfaces.ImageResolver) Option {
	return func(n *Normalizer) {
		if resolver != nil {
			n.images = resolver
		}
	}
}

// WithRichText overrides the renderer producing description HTML.
func WithRichText(renderer *richtext.Renderer) Option {
	return func(n *Normalizer) {
		if renderer != nil {
			n.rich = renderer
		}
	}
}

// WithPriceFormatter overrides shop price formatting.
func WithPriceFormatter(formatter PriceFormatter) Option {
	return func(n *Normalizer) {
		n.prices = formatter
	}
}

// WithLogger injects the logger used for diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Normalizer converts loosely typed records into Items. It never fails:
// malformed or missing fields resolve to safe defaults.
type Normalizer struct {
	fields   runtimeconfig.FieldsConfig
	untitled string
	maxTags  int
	images   interfaces.ImageResolver
	isImage  records.ImagePicker
	rich     *richtext.Renderer
	prices   PriceFormatter
	logger   interfaces.Logger
}

// NewNormalizer constructs a Normalizer with the default field table.
func NewNormalizer(opts ...Option) *Normalizer {
	resolver := media.NewResolver()
	n := &Normalizer{
		fields:   runtimeconfig.DefaultFields(),
		untitled: runtimeconfig.UntitledLabel,
		maxTags:  3,
		images:   resolver,
		isImage:  resolver.IsImage,
		rich:     richtext.New(),
		prices:   NewPriceFormatter("ru", "₽"),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ClassifyAsShop reports whether a case-shaped record belongs to the shop subset.
func (n *Normalizer) ClassifyAsShop(record records.Record) bool {
	return records.Flag(record, n.fields.ShopFlag)
}

// Normalize converts record into an Item of the given kind. The slug is the
// record's base slug; Build makes slugs unique across a catalog.
func (n *Normalizer) Normalize(record records.Record, kind Kind) Item {
	title := n.title(record)
	item := Item{
		ID:       n.recordID(record, kind),
		Kind:     kind,
		Title:    title,
		Record:   record,
		untitled: title == "",
	}

	task := records.Lookup(record, n.fields.Task)
	solution := records.Lookup(record, n.fields.Solution)
	item.Description = records.JoinText(task.PlainText(), solution.PlainText())
	item.DescriptionHTML = joinHTML(n.rich.HTML(task.Raw), n.rich.HTML(solution.Raw))
	if item.Description == "" && (kind == KindNews || kind == KindBanner) {
		if field, summary := records.First(record, n.fields.Summary...); field != "" {
			item.Description = summary.PlainText()
			item.DescriptionHTML = n.rich.HTML(summary.Raw)
		}
	}

	maxTags := 0
	if kind == KindCase || kind == KindShop {
		maxTags = n.maxTags
	}
	item.Tags = records.Tags(records.Resolve(record, n.fields.Tags), maxTags)

	item.LogoImage, item.PreviewImage = n.resolveImages(record)
	item.Images = n.additionalImages(record)
	item.PublishedAt = n.publishedAt(record)

	if kind == KindBanner || kind == KindNews {
		if _, link := records.First(record, n.fields.Link...); !link.IsZero() {
			item.Link = link.PlainText()
		}
	}

	item.Slug = NewSlugger().Assign(title, kind, item.ID)
	if item.untitled {
		item.Title = n.untitled
	}
	return item
}

// NormalizeShop converts record into a shop Item carrying its price.
func (n *Normalizer) NormalizeShop(record records.Record) Item {
	item := n.Normalize(record, KindShop)
	price, ok := records.Number(records.Resolve(record, n.fields.Price))
	if !ok || price < 0 {
		price = 0
	}
	item.Price = price
	item.PriceLabel = n.prices.Format(price)
	return item
}

// Build normalizes a snapshot. Case records are split into cases and shop
// items, identifiers are made unique, and slugs are deduplicated across the
// merged order cases, news, shop, banners.
func (n *Normalizer) Build(snapshot Snapshot) Catalog {
	var cat Catalog
	for _, record := range snapshot.Cases {
		if n.ClassifyAsShop(record) {
			cat.Shop = append(cat.Shop, n.NormalizeShop(record))
			continue
		}
		cat.Cases = append(cat.Cases, n.Normalize(record, KindCase))
	}
	for _, record := range snapshot.News {
		cat.News = append(cat.News, n.Normalize(record, KindNews))
	}
	for _, record := range snapshot.Banners {
		cat.Banners = append(cat.Banners, n.Normalize(record, KindBanner))
	}

	slugger := NewSlugger()
	ids := make(map[string]struct{}, cat.Len())
	position := 0
	for _, collection := range [][]Item{cat.Cases, cat.News, cat.Shop, cat.Banners} {
		for i := range collection {
			item := &collection[i]
			if _, dup := ids[item.ID]; dup {
				n.logger.Debug("catalog.item.duplicate_id", "id", item.ID, "kind", item.Kind)
				item.ID = identity.ItemID(string(item.Kind), item.ID+"#"+strconv.Itoa(position))
			}
			ids[item.ID] = struct{}{}
			title := item.Title
			if item.untitled {
				title = ""
			}
			item.Slug = slugger.Assign(title, item.Kind, item.ID)
			position++
		}
	}

	n.logger.Debug("catalog.built",
		"cases", len(cat.Cases),
		"news", len(cat.News),
		"shop", len(cat.Shop),
		"banners", len(cat.Banners),
	)
	return cat
}

func (n *Normalizer) title(record records.Record) string {
	if title := records.Lookup(record, n.fields.Title).PlainText(); title != "" {
		return title
	}
	return records.Lookup(record, n.fields.GenericTitle).PlainText()
}

func (n *Normalizer) recordID(record records.Record, kind Kind) string {
	for _, field := range n.fields.ID {
		if id := records.String(records.Resolve(record, field)); id != "" {
			return id
		}
	}
	key, err := json.Marshal(record)
	if err != nil || len(record) == 0 {
		key = []byte(n.title(record))
	}
	if id := identity.ItemID(string(kind), string(key)); id != "" {
		return id
	}
	return identity.ItemID(string(kind), "empty")
}

func (n *Normalizer) resolveImages(record records.Record) (logo, preview string) {
	logoSrc := records.FindImage(record, records.ImageQuery{
		Candidates: n.fields.Logo,
		Prefer:     records.LogoKeyPattern(),
		Exclude:    []string{n.fields.Content},
		IsImage:    n.isImage,
	})
	previewSrc := records.FindImage(record, records.ImageQuery{
		Candidates: n.fields.Preview,
		Prefer:     records.PreviewKeyPattern(),
		Avoid:      records.LogoKeyPattern(),
		Exclude:    []string{n.fields.Content, n.fields.Team, n.fields.Tags},
		AnyField:   true,
		IsImage:    n.isImage,
	})

	logo = n.images.Resolve(logoSrc)
	if previewSrc == "" {
		return logo, logo
	}
	return logo, n.images.Resolve(previewSrc)
}

func (n *Normalizer) additionalImages(record records.Record) []string {
	sources := records.BlockImages(records.Resolve(record, n.fields.Content))
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		out = append(out, n.images.Resolve(src))
	}
	return out
}

func (n *Normalizer) publishedAt(record records.Record) *time.Time {
	for _, field := range n.fields.PublishedAt {
		if ts, ok := records.Time(records.Resolve(record, field)); ok {
			return &ts
		}
	}
	return nil
}

func joinHTML(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.TrimSpace(part))
	}
	return b.String()
}
