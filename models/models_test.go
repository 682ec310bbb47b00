package models

import (
	"testing"
	"time"
)

func TestDedupSourcesFirstSeenWins(t *testing.T) {
	in := []StorySource{
		{Title: "X", URI: "https://x.test"},
		{Title: "Y", URI: "https://y.test"},
		{Title: "X2", URI: "https://x.test"},
		{Title: "", URI: ""},
		{Title: "Y2", URI: "https://y.test"},
	}
	got := DedupSources(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d: %+v", len(got), got)
	}
	if got[0].URI != "https://x.test" || got[0].Title != "X" {
		t.Fatalf("first entry should keep first-seen title: %+v", got[0])
	}
	if got[1].URI != "https://y.test" || got[1].Title != "Y" {
		t.Fatalf("second entry wrong: %+v", got[1])
	}
}

func TestDedupSourcesPreservesOrder(t *testing.T) {
	in := []StorySource{
		{Title: "c", URI: "c"},
		{Title: "a", URI: "a"},
		{Title: "b", URI: "b"},
	}
	got := DedupSources(in)
	for i, want := range []string{"c", "a", "b"} {
		if got[i].URI != want {
			t.Fatalf("order not preserved: %+v", got)
		}
	}
}

func TestResolveCrossLink(t *testing.T) {
	b := &Briefing{Content: BriefingContent{Stories: []Story{
		{Title: "Alpha"},
		{Title: "Beta"},
	}}}

	if s, ok := b.ResolveCrossLink(Annotation{CrossLinkStoryTitle: "Beta"}); !ok || s.Title != "Beta" {
		t.Fatalf("expected Beta, got %+v ok=%v", s, ok)
	}
	if _, ok := b.ResolveCrossLink(Annotation{CrossLinkStoryTitle: "Gamma"}); ok {
		t.Fatal("dangling cross-link must resolve to nothing")
	}
	if _, ok := b.ResolveCrossLink(Annotation{}); ok {
		t.Fatal("empty cross-link must resolve to nothing")
	}
}

func TestBriefingEmpty(t *testing.T) {
	var b Briefing
	if !b.Empty() {
		t.Fatal("zero briefing should be empty")
	}
	b.Content.DailySummary = "nothing found today"
	if b.Empty() {
		t.Fatal("briefing with a daily summary is not empty")
	}
}

func TestGenerationParamsZeroDate(t *testing.T) {
	p := GenerationParams{}
	if !p.Date.Equal(time.Time{}) {
		t.Fatal("zero params should carry a zero date")
	}
}
