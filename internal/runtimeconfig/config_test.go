package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-showcase/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Catalog.UntitledLabel != "Без названия" {
		t.Fatalf("unexpected untitled label %q", cfg.Catalog.UntitledLabel)
	}
}

func TestConfigValidate_ContentSources(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "api requires base url",
			mutate: func(c *runtimeconfig.Config) { c.Content.BaseURL = " " },
			want:   runtimeconfig.ErrContentBaseURLRequired,
		},
		{
			name: "files requires directory",
			mutate: func(c *runtimeconfig.Config) {
				c.Content.Source = "files"
				c.Content.FilesDir = ""
			},
			want: runtimeconfig.ErrContentFilesDirRequired,
		},
		{
			name:   "unknown source",
			mutate: func(c *runtimeconfig.Config) { c.Content.Source = "ftp" },
			want:   runtimeconfig.ErrContentSourceUnknown,
		},
		{
			name:   "page size",
			mutate: func(c *runtimeconfig.Config) { c.Content.PageSize = 0 },
			want:   runtimeconfig.ErrContentPageSizeInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_RequiresRedisURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Provider = "redis"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheRedisURLRequired) {
		t.Fatalf("expected ErrCacheRedisURLRequired, got %v", err)
	}

	cfg.Cache.RedisURL = "redis://localhost:6379/0"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_ListingRequiresAllCategory(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Listing.Categories = []runtimeconfig.CategoryConfig{{Key: "branding"}}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrListingAllCategoryRequired) {
		t.Fatalf("expected ErrListingAllCategoryRequired, got %v", err)
	}

	cfg.Listing.Categories = []runtimeconfig.CategoryConfig{{Key: "all"}, {Key: "all"}}
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrListingCategoryDuplicate) {
		t.Fatalf("expected ErrListingCategoryDuplicate, got %v", err)
	}
}

func TestConfigValidate_RejectsRelativeRoutes(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Routes.ShopDetail = "shop/:slug"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrRoutePathInvalid) {
		t.Fatalf("expected ErrRoutePathInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeModalTimings(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Modal.CloseAnimation = -1

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrModalTimingInvalid) {
		t.Fatalf("expected ErrModalTimingInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsUnsupportedMediaScheme(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Media.Scheme = "ftp"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected media validation error")
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
