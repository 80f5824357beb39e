package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const (
	rootModule       = "showcase"
	catalogModule    = "showcase.catalog"
	listingModule    = "showcase.listing"
	modalModule      = "showcase.modal"
	listViewModule   = "showcase.listview"
	contentAPIModule = "showcase.contentapi"
	httpModule       = "showcase.http"
	commandsModule   = "showcase.commands"
)

const (
	fieldRoute = "route"
	fieldKind  = "kind"
	fieldSlug  = "slug"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CatalogLogger returns the logger namespace reserved for record normalization.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// ListingLogger returns the logger namespace reserved for filtering and row composition.
func ListingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, listingModule)
}

// ModalLogger returns the logger namespace reserved for the modal synchronizer.
func ModalLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, modalModule)
}

// ListViewLogger returns the logger namespace reserved for list view sessions.
func ListViewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, listViewModule)
}

// ContentAPILogger returns the logger namespace reserved for content sources.
func ContentAPILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentAPIModule)
}

// HTTPLogger returns the logger namespace reserved for the site API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithRouteContext enriches the provided logger with route name, item kind and
// slug. Empty values are ignored.
func WithRouteContext(logger interfaces.Logger, route, kind, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(route); trimmed != "" {
		fields[fieldRoute] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldKind] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldSlug] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
