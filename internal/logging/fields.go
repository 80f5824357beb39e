package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-showcase/pkg/interfaces"
)

type fieldsKey struct{}

// WithFields returns logger with fields attached. Loggers that do not
// implement interfaces.FieldsLogger are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}

// ContextWithFields stores fields on ctx, merged over any already present.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextFields returns a copy of the fields stored on ctx, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ForContext annotates logger with the fields stored on ctx, such as the
// request id set by the HTTP middleware.
func ForContext(logger interfaces.Logger, ctx context.Context) interfaces.Logger {
	return WithFields(logger, ContextFields(ctx))
}
