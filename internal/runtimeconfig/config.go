package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var ErrContentSourceUnknown = errors.New("showcase config: content source is invalid")
var ErrContentBaseURLRequired = errors.New("showcase config: content base url is required for the api source")
var ErrContentFilesDirRequired = errors.New("showcase config: content files directory is required for the files source")
var ErrContentPageSizeInvalid = errors.New("showcase config: content page size must be positive")
var ErrCacheProviderUnknown = errors.New("showcase config: cache provider is invalid")
var ErrCacheRedisURLRequired = errors.New("showcase config: redis url is required for the redis cache provider")
var ErrListingCategoriesRequired = errors.New("showcase config: at least one listing category is required")
var ErrListingAllCategoryRequired = errors.New("showcase config: listing categories must include the all category")
var ErrListingCategoryDuplicate = errors.New("showcase config: listing category keys must be unique")
var ErrModalTimingInvalid = errors.New("showcase config: modal timings must be zero or positive")
var ErrRoutePathInvalid = errors.New("showcase config: route paths must start with a slash")
var ErrLoggingProviderRequired = errors.New("showcase config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("showcase config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("showcase config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("showcase config: logging format is invalid")

// AllCategory is the category key under which the type filter is meaningful.
const AllCategory = "all"

// UntitledLabel is the product-facing fallback title for records without one.
const UntitledLabel = "Без названия"

// Config aggregates the showcase runtime settings. Fields carry mapstructure
// tags so the CLI can decode YAML, JSON, or environment overrides via viper.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Media    MediaConfig    `mapstructure:"media"`
	Routes   RoutesConfig   `mapstructure:"routes"`
	Listing  ListingConfig  `mapstructure:"listing"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Fields   FieldsConfig   `mapstructure:"fields"`
	Modal    ModalConfig    `mapstructure:"modal"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Features Features       `mapstructure:"features"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ContentConfig selects and configures the content source.
type ContentConfig struct {
	// Source is either "api" (REST backend) or "files" (markdown fixtures).
	Source         string            `mapstructure:"source"`
	BaseURL        string            `mapstructure:"base_url"`
	ContentPath    string            `mapstructure:"content_path"`
	TeamPath       string            `mapstructure:"team_path"`
	Headers        map[string]string `mapstructure:"headers"`
	Timeout        time.Duration     `mapstructure:"timeout"`
	PageSize       int               `mapstructure:"page_size"`
	Paginate       bool              `mapstructure:"paginate"`
	ValidateSchema bool              `mapstructure:"validate_schema"`
	FilesDir       string            `mapstructure:"files_dir"`
}

// CacheConfig captures snapshot cache behaviour.
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Provider   string        `mapstructure:"provider"`
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
	Capacity   int           `mapstructure:"capacity"`
	RedisURL   string        `mapstructure:"redis_url"`
	Prefix     string        `mapstructure:"prefix"`
}

// MediaConfig drives image URL resolution.
type MediaConfig struct {
	BaseURL         string   `mapstructure:"base_url"`
	Placeholder     string   `mapstructure:"placeholder"`
	Scheme          string   `mapstructure:"scheme"`
	StoragePrefixes []string `mapstructure:"storage_prefixes"`
}

// RoutesConfig names the route group and the path templates recognised by the site.
// Templates use go-urlkit ":param" placeholders.
type RoutesConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Group       string `mapstructure:"group"`
	Listing     string `mapstructure:"listing"`
	Detail      string `mapstructure:"detail"`
	BlogListing string `mapstructure:"blog_listing"`
	BlogDetail  string `mapstructure:"blog_detail"`
	ShopListing string `mapstructure:"shop_listing"`
	ShopDetail  string `mapstructure:"shop_detail"`
}

// ListingConfig holds the category table and the type options shown under "all".
type ListingConfig struct {
	Categories []CategoryConfig `mapstructure:"categories"`
	Types      []TypeConfig     `mapstructure:"types"`
}

// CategoryConfig is one entry of the fixed category -> tag list table.
type CategoryConfig struct {
	Key   string   `mapstructure:"key"`
	Label string   `mapstructure:"label"`
	Tags  []string `mapstructure:"tags"`
}

// TypeConfig labels an item kind for the type filter.
type TypeConfig struct {
	Kind  string `mapstructure:"kind"`
	Label string `mapstructure:"label"`
}

// CatalogConfig tunes record normalization.
type CatalogConfig struct {
	UntitledLabel string `mapstructure:"untitled_label"`
	MaxTags       int    `mapstructure:"max_tags"`
	Currency      string `mapstructure:"currency"`
	PriceLocale   string `mapstructure:"price_locale"`
}

// FieldsConfig lists the candidate field names consulted while normalizing
// records. Candidate lists are tried in order; the first usable value wins.
type FieldsConfig struct {
	ID           []string `mapstructure:"id"`
	Title        string   `mapstructure:"title"`
	GenericTitle string   `mapstructure:"generic_title"`
	Task         string   `mapstructure:"task"`
	Solution     string   `mapstructure:"solution"`
	Summary      []string `mapstructure:"summary"`
	Tags         string   `mapstructure:"tags"`
	ShopFlag     string   `mapstructure:"shop_flag"`
	Price        string   `mapstructure:"price"`
	PublishedAt  []string `mapstructure:"published_at"`
	Logo         []string `mapstructure:"logo"`
	Preview      []string `mapstructure:"preview"`
	Content      string   `mapstructure:"content"`
	Link         []string `mapstructure:"link"`
	Team         string   `mapstructure:"team"`
	TeamName     []string `mapstructure:"team_name"`
	TeamRole     []string `mapstructure:"team_role"`
	TeamImage    []string `mapstructure:"team_image"`
}

// ModalConfig carries the detail overlay timings.
type ModalConfig struct {
	CloseAnimation time.Duration `mapstructure:"close_animation"`
	ScrollDelay    time.Duration `mapstructure:"scroll_delay"`
	HeaderOffset   int           `mapstructure:"header_offset"`
}

// HTTPConfig configures the site JSON API server.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	BasePath        string        `mapstructure:"base_path"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool `mapstructure:"logger"`
	// TeamCachedLabels lets the team resolver keep members that only have a cached label.
	TeamCachedLabels bool `mapstructure:"team_cached_labels"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns defaults suitable for local development against the files source.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Source:         "api",
			BaseURL:        "http://localhost:1337/api",
			ContentPath:    "/cases",
			TeamPath:       "/team",
			Timeout:        10 * time.Second,
			PageSize:       500,
			ValidateSchema: true,
			FilesDir:       "content",
		},
		Cache: CacheConfig{
			Enabled:    true,
			Provider:   "memory",
			DefaultTTL: time.Minute,
			Capacity:   64,
			Prefix:     "showcase:",
		},
		Media: MediaConfig{
			BaseURL:         "http://localhost:1337",
			Placeholder:     "/images/placeholder.png",
			Scheme:          "https",
			StoragePrefixes: []string{"/uploads/", "uploads/", "/storage/", "storage/"},
		},
		Routes: RoutesConfig{
			Group:       "site",
			Listing:     "/",
			Detail:      "/:kind/:slug",
			BlogListing: "/blog",
			BlogDetail:  "/blog/:slug",
			ShopListing: "/shop",
			ShopDetail:  "/shop/:slug",
		},
		Listing: ListingConfig{
			Categories: []CategoryConfig{
				{Key: AllCategory, Label: "Все"},
				{Key: "branding", Label: "Брендинг", Tags: []string{"Логотип", "Фирменный стиль", "Упаковка"}},
				{Key: "digital", Label: "Digital", Tags: []string{"Сайт", "Лендинг", "Приложение"}},
				{Key: "3d", Label: "3D", Tags: []string{"Визуализация", "Анимация", "AR"}},
				{Key: "events", Label: "Мероприятия"},
			},
			Types: []TypeConfig{
				{Kind: "case", Label: "Кейсы"},
				{Kind: "news", Label: "Новости"},
				{Kind: "shop", Label: "Магазин"},
			},
		},
		Catalog: CatalogConfig{
			UntitledLabel: UntitledLabel,
			MaxTags:       3,
			Currency:      "₽",
			PriceLocale:   "ru",
		},
		Fields: DefaultFields(),
		Modal: ModalConfig{
			CloseAnimation: 300 * time.Millisecond,
			ScrollDelay:    50 * time.Millisecond,
			HeaderOffset:   100,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			BasePath:        "/api",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// DefaultFields returns the field candidates understood out of the box.
func DefaultFields() FieldsConfig {
	return FieldsConfig{
		ID:           []string{"id", "_id", "uuid", "documentId"},
		Title:        "case_title",
		GenericTitle: "title",
		Task:         "task",
		Solution:     "solution",
		Summary:      []string{"description", "excerpt", "text", "body"},
		Tags:         "tags",
		ShopFlag:     "is_shop",
		Price:        "price",
		PublishedAt:  []string{"published_at", "publishedAt", "date", "created_at", "createdAt"},
		Logo:         []string{"logo", "logotip", "logo_image", "logoImage"},
		Preview:      []string{"preview", "preview_image", "previewImage", "cover", "oblozhka", "image"},
		Content:      "content",
		Link:         []string{"link", "url", "href"},
		Team:         "team",
		TeamName:     []string{"name", "full_name", "fullName", "fio", "title"},
		TeamRole:     []string{"role", "position", "dolzhnost", "job_title", "jobTitle"},
		TeamImage:    []string{"photo", "avatar", "image", "foto"},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if err := cfg.validateContent(); err != nil {
		return err
	}
	if cfg.Cache.Enabled {
		switch normalize(cfg.Cache.Provider) {
		case "", "memory":
		case "redis":
			if strings.TrimSpace(cfg.Cache.RedisURL) == "" {
				return ErrCacheRedisURLRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrCacheProviderUnknown, cfg.Cache.Provider)
		}
	}
	if err := cfg.validateListing(); err != nil {
		return err
	}
	if err := cfg.validateRoutes(); err != nil {
		return err
	}
	if cfg.Modal.CloseAnimation < 0 || cfg.Modal.ScrollDelay < 0 || cfg.Modal.HeaderOffset < 0 {
		return ErrModalTimingInvalid
	}
	if err := validation.ValidateStruct(&cfg.Media,
		validation.Field(&cfg.Media.BaseURL, is.URL),
		validation.Field(&cfg.Media.Scheme, validation.In("http", "https")),
	); err != nil {
		return fmt.Errorf("showcase config: media: %w", err)
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "console" && provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func (cfg Config) validateContent() error {
	switch normalize(cfg.Content.Source) {
	case "", "api":
		if strings.TrimSpace(cfg.Content.BaseURL) == "" {
			return ErrContentBaseURLRequired
		}
		if err := validation.Validate(cfg.Content.BaseURL, is.URL); err != nil {
			return fmt.Errorf("showcase config: content base url: %w", err)
		}
	case "files":
		if strings.TrimSpace(cfg.Content.FilesDir) == "" {
			return ErrContentFilesDirRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrContentSourceUnknown, cfg.Content.Source)
	}
	if cfg.Content.PageSize <= 0 {
		return ErrContentPageSizeInvalid
	}
	return nil
}

func (cfg Config) validateListing() error {
	if len(cfg.Listing.Categories) == 0 {
		return ErrListingCategoriesRequired
	}
	seen := make(map[string]struct{}, len(cfg.Listing.Categories))
	for _, category := range cfg.Listing.Categories {
		key := strings.TrimSpace(category.Key)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", ErrListingCategoryDuplicate, key)
		}
		seen[key] = struct{}{}
	}
	if _, ok := seen[AllCategory]; !ok {
		return ErrListingAllCategoryRequired
	}
	return nil
}

func (cfg Config) validateRoutes() error {
	paths := map[string]string{
		"listing":      cfg.Routes.Listing,
		"detail":       cfg.Routes.Detail,
		"blog_listing": cfg.Routes.BlogListing,
		"blog_detail":  cfg.Routes.BlogDetail,
		"shop_listing": cfg.Routes.ShopListing,
		"shop_detail":  cfg.Routes.ShopDetail,
	}
	for name, path := range paths {
		if !strings.HasPrefix(strings.TrimSpace(path), "/") {
			return fmt.Errorf("%w: %s", ErrRoutePathInvalid, name)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
