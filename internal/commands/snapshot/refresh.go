package snapshotcmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-showcase/internal/commands"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const refreshSnapshotMessageType = "showcase.snapshot.refresh"

// ErrReloadFailed reports that the snapshot was invalidated but the reload
// fell back to empty collections.
var ErrReloadFailed = errors.New("snapshotcmd: reload fell back to an empty snapshot")

// RefreshSnapshotCommand drops cached snapshots and optionally reloads the
// live list view.
type RefreshSnapshotCommand struct {
	Reason string `json:"reason,omitempty"`
	Reload bool   `json:"reload"`
}

// Type implements command.Message.
func (RefreshSnapshotCommand) Type() string { return refreshSnapshotMessageType }

// Validate implements command.Message.
func (m RefreshSnapshotCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Reason, validation.Length(0, 200)),
	)
}

// Invalidator drops cached snapshots.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Reloader refetches the live snapshot.
type Reloader interface {
	Load(ctx context.Context)
	Failed() bool
}

// RefreshSnapshotHandler executes RefreshSnapshotCommand.
type RefreshSnapshotHandler struct {
	inner *commands.Handler[RefreshSnapshotCommand]
}

// NewRefreshSnapshotHandler wires the handler to a cache invalidator and a
// reloader. Either may be nil.
func NewRefreshSnapshotHandler(invalidator Invalidator, reloader Reloader, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshSnapshotCommand]) *RefreshSnapshotHandler {
	exec := func(ctx context.Context, msg RefreshSnapshotCommand) error {
		if invalidator != nil {
			if err := invalidator.Invalidate(ctx); err != nil {
				return err
			}
		}
		if msg.Reload && reloader != nil {
			reloader.Load(ctx)
			if err := ctx.Err(); err != nil {
				return err
			}
			if reloader.Failed() {
				return ErrReloadFailed
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RefreshSnapshotCommand]{
		commands.WithLogger[RefreshSnapshotCommand](logger),
		commands.WithOperation[RefreshSnapshotCommand]("snapshot.refresh"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshSnapshotHandler{
		inner: commands.NewHandler[RefreshSnapshotCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshSnapshotCommand].
func (h *RefreshSnapshotHandler) Execute(ctx context.Context, msg RefreshSnapshotCommand) error {
	return h.inner.Execute(ctx, msg)
}
