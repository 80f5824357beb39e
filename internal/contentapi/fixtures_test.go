package contentapi_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-showcase/internal/contentapi"
	"github.com/goliatone/go-showcase/pkg/interfaces"
	"github.com/goliatone/go-showcase/pkg/testsupport"
)

type envelopeCounts struct {
	Cases   int `json:"cases"`
	News    int `json:"news"`
	Banners int `json:"banners"`
	Team    int `json:"team"`
}

func TestClientDecodesRecordedFixtures(t *testing.T) {
	server := testsupport.ServeFixtures(t, map[string]string{
		"/api/cases": "testdata/content.json",
		"/api/team":  "testdata/team.json",
	})

	client, err := contentapi.NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	content, err := client.FetchContent(context.Background(), interfaces.PageRequest{})
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	team, err := client.FetchTeam(context.Background(), interfaces.PageRequest{})
	if err != nil {
		t.Fatalf("fetch team: %v", err)
	}

	var want envelopeCounts
	if err := testsupport.LoadGolden("testdata/content.golden.json", &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}
	got := envelopeCounts{
		Cases:   len(content.Data.Cases),
		News:    len(content.Data.News),
		Banners: len(content.Data.Banners),
		Team:    len(team.Data.Team),
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if content.Data.Cases[1]["is_shop"] != true {
		t.Fatalf("expected shop flag preserved, got %#v", content.Data.Cases[1]["is_shop"])
	}
}
