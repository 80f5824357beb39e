package showcase_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-showcase"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := showcase.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateCacheRedisRequiresURL(t *testing.T) {
	cfg := showcase.DefaultConfig()
	cfg.Cache.Provider = "redis"
	cfg.Cache.RedisURL = ""

	if err := cfg.Validate(); !errors.Is(err, showcase.ErrCacheRedisURLRequired) {
		t.Fatalf("expected ErrCacheRedisURLRequired, got %v", err)
	}
}

func TestConfigValidateContentSourceUnknown(t *testing.T) {
	cfg := showcase.DefaultConfig()
	cfg.Content.Source = "ftp"

	if err := cfg.Validate(); !errors.Is(err, showcase.ErrContentSourceUnknown) {
		t.Fatalf("expected ErrContentSourceUnknown, got %v", err)
	}
}

func TestConfigValidateFilesSourceRequiresDir(t *testing.T) {
	cfg := showcase.DefaultConfig()
	cfg.Content.Source = "files"
	cfg.Content.FilesDir = " "

	if err := cfg.Validate(); !errors.Is(err, showcase.ErrContentFilesDirRequired) {
		t.Fatalf("expected ErrContentFilesDirRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderRequired(t *testing.T) {
	cfg := showcase.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, showcase.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidateRoutePathInvalid(t *testing.T) {
	cfg := showcase.DefaultConfig()
	cfg.Routes.BlogListing = "blog"

	if err := cfg.Validate(); !errors.Is(err, showcase.ErrRoutePathInvalid) {
		t.Fatalf("expected ErrRoutePathInvalid, got %v", err)
	}
}
