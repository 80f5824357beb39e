package interfaces

import "context"

// Logger is the leveled, key/value logger every showcase package writes to.
// Its method set matches github.com/goliatone/go-logger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithFields(fields map[string]any) Logger
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name, e.g. "showcase.listview".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fields on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
