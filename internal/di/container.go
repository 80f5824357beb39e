package di

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-showcase/internal/cache"
	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/internal/commands"
	snapshotcmd "github.com/goliatone/go-showcase/internal/commands/snapshot"
	"github.com/goliatone/go-showcase/internal/contentapi"
	showcasehttp "github.com/goliatone/go-showcase/internal/http"
	"github.com/goliatone/go-showcase/internal/listing"
	"github.com/goliatone/go-showcase/internal/listview"
	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/logging/console"
	"github.com/goliatone/go-showcase/internal/logging/gologger"
	"github.com/goliatone/go-showcase/internal/media"
	"github.com/goliatone/go-showcase/internal/modal"
	"github.com/goliatone/go-showcase/internal/routes"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	"github.com/goliatone/go-showcase/internal/team"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// Container wires the showcase components from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	upstream interfaces.ContentAPI
	cache    interfaces.CacheProvider
	cached   *contentapi.CachedSource

	media      *media.Resolver
	normalizer *catalog.Normalizer
	team       *team.Resolver
	routes     *routes.Table
	engine     *listing.Engine
	session    *listview.Session
	refresh    *snapshotcmd.RefreshSnapshotHandler
	site       *showcasehttp.SiteAPI
}

// Option mutates the container before components are built.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentAPI replaces the configured content source.
func WithContentAPI(api interfaces.ContentAPI) Option {
	return func(c *Container) {
		if api != nil {
			c.upstream = api
		}
	}
}

// WithCacheProvider replaces the configured cache provider.
func WithCacheProvider(provider interfaces.CacheProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.cache = provider
		}
	}
}

// NewContainer validates cfg and builds every component.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCatalog()
	if err := c.configureRoutes(); err != nil {
		return nil, err
	}
	if err := c.configureSource(); err != nil {
		return nil, err
	}
	if err := c.configureCache(); err != nil {
		return nil, err
	}
	c.configureSession()
	c.configureCommands()
	c.configureHTTP()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureCatalog() {
	cfg := c.Config
	c.media = media.NewResolver(
		media.WithBaseURL(cfg.Media.BaseURL),
		media.WithPlaceholder(cfg.Media.Placeholder),
		media.WithScheme(cfg.Media.Scheme),
		media.WithStoragePrefixes(cfg.Media.StoragePrefixes...),
	)
	c.normalizer = catalog.NewNormalizer(
		catalog.WithFields(cfg.Fields),
		catalog.WithUntitledLabel(cfg.Catalog.UntitledLabel),
		catalog.WithMaxTags(cfg.Catalog.MaxTags),
		catalog.WithMedia(c.media),
		catalog.WithPriceFormatter(catalog.NewPriceFormatter(cfg.Catalog.PriceLocale, cfg.Catalog.Currency)),
		catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)),
	)

	teamOpts := []team.Option{
		team.WithFields(cfg.Fields),
		team.WithImageResolver(c.media),
		team.WithLogger(logging.CatalogLogger(c.loggerProvider)),
	}
	if cfg.Features.TeamCachedLabels {
		teamOpts = append(teamOpts, team.WithCachedLabelFallback())
	}
	c.team = team.NewResolver(teamOpts...)

	c.engine = listing.NewEngine(
		listing.NewTable(cfg.Listing),
		listing.WithEngineLogger(logging.ListingLogger(c.loggerProvider)),
	)
}

func (c *Container) configureRoutes() error {
	table, err := routes.NewTable(c.Config.Routes)
	if err != nil {
		return err
	}
	c.routes = table
	return nil
}

func (c *Container) configureSource() error {
	if c.upstream != nil {
		return nil
	}
	logger := logging.ContentAPILogger(c.loggerProvider)
	switch strings.ToLower(strings.TrimSpace(c.Config.Content.Source)) {
	case "files":
		c.upstream = contentapi.NewDirSource(c.Config.Content.FilesDir, contentapi.WithFileLogger(logger))
	default:
		client, err := contentapi.NewClientFromConfig(c.Config.Content, contentapi.WithClientLogger(logger))
		if err != nil {
			return err
		}
		c.upstream = client
	}
	return nil
}

func (c *Container) configureCache() error {
	if c.cache == nil {
		provider, err := cache.New(context.Background(), c.Config.Cache)
		if err != nil {
			return err
		}
		c.cache = provider
	}
	if c.cache == nil {
		return nil
	}
	c.cached = contentapi.NewCachedSource(c.upstream, c.cache,
		contentapi.WithTTL(c.Config.Cache.DefaultTTL),
		contentapi.WithCacheLogger(logging.ContentAPILogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureSession() {
	c.session = listview.NewSession(c.ContentAPI(),
		listview.WithNormalizer(c.normalizer),
		listview.WithTeamResolver(c.team),
		listview.WithEngine(c.engine),
		listview.WithPageRequest(interfaces.PageRequest{Page: 1, Limit: c.Config.Content.PageSize}),
		listview.WithLogger(logging.ListViewLogger(c.loggerProvider)),
	)
}

func (c *Container) configureCommands() {
	var invalidator snapshotcmd.Invalidator
	if c.cached != nil {
		invalidator = c.cached
	}
	c.refresh = snapshotcmd.NewRefreshSnapshotHandler(
		invalidator,
		c.session,
		commands.CommandLogger(c.loggerProvider, "snapshot"),
	)
}

func (c *Container) configureHTTP() {
	c.site = showcasehttp.NewSiteAPI(c.session,
		showcasehttp.WithBasePath(c.Config.HTTP.BasePath),
		showcasehttp.WithEngine(c.engine),
		showcasehttp.WithRoutes(c.routes),
		showcasehttp.WithRefreshCommand(c.refresh),
		showcasehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
}

// LoggerProvider returns the configured provider; nil means logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ContentAPI returns the content source, cached when a cache is configured.
func (c *Container) ContentAPI() interfaces.ContentAPI {
	if c.cached != nil {
		return c.cached
	}
	return c.upstream
}

// CacheProvider returns the snapshot cache, or nil when caching is disabled.
func (c *Container) CacheProvider() interfaces.CacheProvider {
	return c.cache
}

func (c *Container) Normalizer() *catalog.Normalizer {
	return c.normalizer
}

func (c *Container) TeamResolver() *team.Resolver {
	return c.team
}

func (c *Container) Routes() *routes.Table {
	return c.routes
}

func (c *Container) Engine() *listing.Engine {
	return c.engine
}

func (c *Container) Session() *listview.Session {
	return c.session
}

func (c *Container) RefreshHandler() *snapshotcmd.RefreshSnapshotHandler {
	return c.refresh
}

func (c *Container) SiteAPI() *showcasehttp.SiteAPI {
	return c.site
}

// NewModal builds a synchronizer bound to nav and subscribes it to the session.
func (c *Container) NewModal(nav interfaces.Navigator, opts ...modal.Option) *modal.Synchronizer {
	base := []modal.Option{
		modal.WithRoutes(c.routes),
		modal.WithConfig(c.Config.Modal),
		modal.WithCards(c.session),
		modal.WithLogger(logging.ModalLogger(c.loggerProvider)),
	}
	synchronizer := modal.New(nav, append(base, opts...)...)
	c.session.Subscribe(synchronizer)
	return synchronizer
}

// Close unmounts the session and releases the cache connection.
func (c *Container) Close() error {
	c.session.Unmount()
	if closer, ok := c.cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
