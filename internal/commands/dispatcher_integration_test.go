package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type reloadCommand struct {
	Source string
}

func (reloadCommand) Type() string { return "showcase.test.reload" }

func (c reloadCommand) Validate() error {
	if c.Source == "" {
		return errors.New("source required")
	}
	return nil
}

var errUpstreamDown = errors.New("upstream unavailable")

func flakyReload(failures int32, attempts *atomic.Int32) *Handler[reloadCommand] {
	return NewHandler(func(ctx context.Context, _ reloadCommand) error {
		if attempts.Add(1) <= failures {
			return errUpstreamDown
		}
		return nil
	}, WithTimeout[reloadCommand](time.Second), WithOperation[reloadCommand]("snapshot.reload"))
}

func TestDispatcherRetriesFlakyReload(t *testing.T) {
	var attempts atomic.Int32
	sub := dispatcher.SubscribeCommand(flakyReload(1, &attempts), runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), reloadCommand{Source: "api"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if got := attempts.Load(); got != 2 {
		t.Fatalf("expected initial attempt plus one retry, got %d", got)
	}
}

func TestDispatcherGivesUpAfterRetries(t *testing.T) {
	var attempts atomic.Int32
	sub := dispatcher.SubscribeCommand(flakyReload(10, &attempts), runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), reloadCommand{Source: "files"}); err == nil {
		t.Fatal("expected reload error once retries are exhausted")
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("expected initial attempt plus two retries, got %d", got)
	}
}
