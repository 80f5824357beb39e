package contentapi_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-showcase/internal/contentapi"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"cases/b-beta.md": {Data: []byte(`---
title: Beta
is_shop: true
price: 1500
tags:
  selectedItems:
    - label: AR
---
Beta body
`)},
		"cases/a-alpha.md": {Data: []byte(`---
id: 42
title: Alpha
published_at: 2024-03-01T10:00:00Z
---
`)},
		"cases/notes.txt": {Data: []byte("ignored")},
		"news/launch.md": {Data: []byte(`---
title: Launch
content: explicit
---
body is not used
`)},
		"news/broken.md": {Data: []byte("---\ntitle: [unclosed\n---\n")},
		"team/anna.md":   {Data: []byte("---\nname: Анна\nrole: Art director\n---\n")},
	}
}

func TestFileSourceFetchContent(t *testing.T) {
	source := contentapi.NewFileSource(contentFS())
	envelope, err := source.FetchContent(context.Background(), interfaces.DefaultPageRequest())
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}

	cases := envelope.Data.Cases
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0]["title"] != "Alpha" || cases[1]["title"] != "Beta" {
		t.Fatalf("expected files in name order, got %v and %v", cases[0]["title"], cases[1]["title"])
	}
	if cases[0]["id"] != 42 {
		t.Fatalf("expected front matter id to win, got %#v", cases[0]["id"])
	}
	if _, ok := cases[0]["content"]; ok {
		t.Fatal("expected empty body to leave content unset")
	}
	if cases[1]["id"] != "b-beta" {
		t.Fatalf("expected file name id, got %#v", cases[1]["id"])
	}
	if cases[1]["content"] != "Beta body" {
		t.Fatalf("expected body in content, got %#v", cases[1]["content"])
	}
	tags, ok := cases[1]["tags"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map with string keys, got %T", cases[1]["tags"])
	}
	items, ok := tags["selectedItems"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected selected items %#v", tags["selectedItems"])
	}
	if _, ok := items[0].(map[string]any); !ok {
		t.Fatalf("expected normalized item map, got %T", items[0])
	}

	if len(envelope.Data.News) != 1 || envelope.Data.News[0]["content"] != "explicit" {
		t.Fatalf("expected broken file skipped and explicit content kept, got %+v", envelope.Data.News)
	}
	if envelope.Data.Banners == nil || len(envelope.Data.Banners) != 0 {
		t.Fatalf("expected empty banners for missing directory, got %#v", envelope.Data.Banners)
	}
}

func TestFileSourceFetchTeam(t *testing.T) {
	source := contentapi.NewFileSource(contentFS())
	envelope, err := source.FetchTeam(context.Background(), interfaces.DefaultPageRequest())
	if err != nil {
		t.Fatalf("fetch team: %v", err)
	}
	if len(envelope.Data.Team) != 1 || envelope.Data.Team[0]["name"] != "Анна" || envelope.Data.Team[0]["id"] != "anna" {
		t.Fatalf("unexpected team %+v", envelope.Data.Team)
	}
}

func TestFileSourcePages(t *testing.T) {
	source := contentapi.NewFileSource(contentFS())
	envelope, err := source.FetchContent(context.Background(), interfaces.PageRequest{Page: 2, Limit: 1})
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	if len(envelope.Data.Cases) != 1 || envelope.Data.Cases[0]["title"] != "Beta" {
		t.Fatalf("expected second case on page 2, got %+v", envelope.Data.Cases)
	}
	envelope, err = source.FetchContent(context.Background(), interfaces.PageRequest{Page: 3, Limit: 1})
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	if len(envelope.Data.Cases) != 0 {
		t.Fatalf("expected empty page, got %+v", envelope.Data.Cases)
	}
}

func TestFileSourceBodyField(t *testing.T) {
	source := contentapi.NewFileSource(contentFS(), contentapi.WithBodyField("body"))
	envelope, err := source.FetchContent(context.Background(), interfaces.DefaultPageRequest())
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	if envelope.Data.Cases[1]["body"] != "Beta body" {
		t.Fatalf("expected body field, got %+v", envelope.Data.Cases[1])
	}
}
