package logging

import (
	"context"
	"testing"
)

func TestContextWithFieldsMergesAndCopies(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r1", "route": "detail"})
	ctx = ContextWithFields(ctx, map[string]any{"route": "blog_detail"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "r1" || fields["route"] != "blog_detail" {
		t.Fatalf("unexpected fields %#v", fields)
	}

	fields["request_id"] = "mutated"
	if got := ContextFields(ctx)["request_id"]; got != "r1" {
		t.Fatalf("expected stored fields untouched, got %v", got)
	}
}

func TestContextFieldsEmpty(t *testing.T) {
	if fields := ContextFields(context.Background()); fields != nil {
		t.Fatalf("expected nil fields, got %#v", fields)
	}
	ctx := context.Background()
	if got := ContextWithFields(ctx, nil); got != ctx {
		t.Fatal("expected context returned unchanged for empty fields")
	}
}

func TestForContextAttachesFields(t *testing.T) {
	logger := &recordingLogger{}
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r2"})

	ForContext(logger, ctx)
	if len(logger.fields) != 1 || logger.fields[0]["request_id"] != "r2" {
		t.Fatalf("expected request id attached, got %#v", logger.fields)
	}

	if ForContext(logger, context.Background()) != logger || len(logger.fields) != 1 {
		t.Fatalf("expected logger unchanged without context fields, got %#v", logger.fields)
	}
}
