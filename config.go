package showcase

import "github.com/goliatone/go-showcase/internal/runtimeconfig"

var (
	ErrContentSourceUnknown       = runtimeconfig.ErrContentSourceUnknown
	ErrContentBaseURLRequired     = runtimeconfig.ErrContentBaseURLRequired
	ErrContentFilesDirRequired    = runtimeconfig.ErrContentFilesDirRequired
	ErrContentPageSizeInvalid     = runtimeconfig.ErrContentPageSizeInvalid
	ErrCacheProviderUnknown       = runtimeconfig.ErrCacheProviderUnknown
	ErrCacheRedisURLRequired      = runtimeconfig.ErrCacheRedisURLRequired
	ErrListingCategoriesRequired  = runtimeconfig.ErrListingCategoriesRequired
	ErrListingAllCategoryRequired = runtimeconfig.ErrListingAllCategoryRequired
	ErrListingCategoryDuplicate   = runtimeconfig.ErrListingCategoryDuplicate
	ErrModalTimingInvalid         = runtimeconfig.ErrModalTimingInvalid
	ErrRoutePathInvalid           = runtimeconfig.ErrRoutePathInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MediaConfig    = runtimeconfig.MediaConfig
	RoutesConfig   = runtimeconfig.RoutesConfig
	ListingConfig  = runtimeconfig.ListingConfig
	CategoryConfig = runtimeconfig.CategoryConfig
	TypeConfig     = runtimeconfig.TypeConfig
	CatalogConfig  = runtimeconfig.CatalogConfig
	FieldsConfig   = runtimeconfig.FieldsConfig
	ModalConfig    = runtimeconfig.ModalConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration for the showcase module.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
