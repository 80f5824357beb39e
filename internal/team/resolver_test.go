package team_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-showcase/internal/media"
	"github.com/goliatone/go-showcase/internal/records"
	"github.com/goliatone/go-showcase/internal/team"
)

func teamRecords() []records.Record {
	return []records.Record{
		{"id": "a", "fio": "Анна", "dolzhnost": "Арт-директор", "photo": "/uploads/anna.jpg"},
		{"id": "b", "name": map[string]any{"content": "<p>Борис</p>"}, "position": "Дизайнер"},
		{"documentId": "c", "title": "Вера", "role": "", "job_title": "Менеджер"},
		{"id": "d", "role": "Без имени"},
	}
}

func TestResolveFollowsSelectionOrder(t *testing.T) {
	caseRecord := records.Record{
		"team": `{"ids":["c","a","b"],"selectedItems":[{"id":"b","label":"Боря","image":"/uploads/cached-b.png"}]}`,
	}
	resolver := team.NewResolver(team.WithImageResolver(media.NewResolver(media.WithBaseURL("https://cdn.test"))))

	members := resolver.Resolve(caseRecord, teamRecords())

	want := []team.Member{
		{ID: "c", Name: "Вера", Role: "Менеджер", Image: "https://cdn.test/images/placeholder.png"},
		{ID: "a", Name: "Анна", Role: "Арт-директор", Image: "https://cdn.test/uploads/anna.jpg"},
		{ID: "b", Name: "Борис", Role: "Дизайнер", Image: "https://cdn.test/uploads/cached-b.png"},
	}
	if !reflect.DeepEqual(members, want) {
		t.Fatalf("expected %+v, got %+v", want, members)
	}
}

func TestResolveDropsMissingAndUnnamedMembers(t *testing.T) {
	caseRecord := records.Record{
		"team": map[string]any{
			"ids": []any{"ghost", "d", "a", "nobody"},
			"selectedItems": []any{
				map[string]any{"id": "ghost", "label": "Призрак"},
			},
		},
	}

	members := team.Resolve(caseRecord, teamRecords())
	if len(members) != 1 || members[0].ID != "a" {
		t.Fatalf("expected only member a, got %+v", members)
	}
}

func TestResolveCachedLabelFallback(t *testing.T) {
	caseRecord := records.Record{
		"team": map[string]any{
			"ids": []any{"ghost", "nobody"},
			"selectedItems": []any{
				map[string]any{"id": "ghost", "label": "Призрак", "image": "/uploads/ghost.png"},
			},
		},
	}

	members := team.Resolve(caseRecord, teamRecords(), team.WithCachedLabelFallback())
	if len(members) != 1 {
		t.Fatalf("expected one cached member, got %+v", members)
	}
	if members[0].Name != "Призрак" || members[0].Image != "/uploads/ghost.png" {
		t.Fatalf("unexpected cached member %+v", members[0])
	}
}

func TestResolveWithoutSelection(t *testing.T) {
	for _, record := range []records.Record{{}, {"team": "not json"}, {"team": "[]"}} {
		members := team.Resolve(record, teamRecords())
		if members == nil || len(members) != 0 {
			t.Fatalf("expected empty roster for %v, got %#v", record, members)
		}
	}
}

func TestResolveSkipsDuplicateSelections(t *testing.T) {
	caseRecord := records.Record{"team": []any{"a", "a"}}
	members := team.Resolve(caseRecord, teamRecords())
	if len(members) != 1 {
		t.Fatalf("expected duplicate selection collapsed, got %+v", members)
	}
}
