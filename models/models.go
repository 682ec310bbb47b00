package models

import "time"

// Annotation is an inline glossary marker attached to a term inside a
// story summary. Explanation is optional for low-importance terms.
type Annotation struct {
	Term                string `json:"term"`
	Explanation         string `json:"explanation,omitempty"`
	Importance          int    `json:"importance"`
	CrossLinkStoryTitle string `json:"crossLinkStoryTitle,omitempty"`
}

// Media points at a visual element for a story: either a direct image
// URL or a YouTube video ID.
type Media struct {
	Type    string `json:"type"`
	Src     string `json:"src,omitempty"`
	VideoID string `json:"videoId,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

type Story struct {
	ID          string       `json:"id,omitempty"`
	Category    string       `json:"category"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Importance  int          `json:"importance"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Media       *Media       `json:"media,omitempty"`
}

// StorySource is a cited search result. URI is the dedup key within a
// briefing's source list.
type StorySource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type BriefingContent struct {
	Greeting     string       `json:"greeting"`
	Intro        string       `json:"intro"`
	DailySummary string       `json:"dailySummary,omitempty"`
	Stories      []Story      `json:"stories"`
	Outro        string       `json:"outro"`
	Annotations  []Annotation `json:"annotations,omitempty"`
}

type Briefing struct {
	Content BriefingContent `json:"content"`
	Sources []StorySource   `json:"sources"`
}

// Empty reports whether generation produced nothing worth rendering.
func (b *Briefing) Empty() bool {
	return len(b.Content.Stories) == 0 && b.Content.DailySummary == ""
}

// Weather is the weather-time endpoint payload: a local time string
// plus current conditions, both produced by the model.
type Weather struct {
	Time    string        `json:"time"`
	Weather WeatherDetail `json:"weather"`
}

type WeatherDetail struct {
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	Icon        string `json:"icon"`
}

// GenerationParams are the inputs to briefing generation. A share
// always freezes the generated result, never these.
type GenerationParams struct {
	Date     time.Time
	Country  string
	Category string
}

// DedupSources collapses repeated URIs keeping discovery order. The
// first occurrence of a URI wins, title included; entries with an
// empty URI are dropped.
func DedupSources(sources []StorySource) []StorySource {
	seen := make(map[string]struct{}, len(sources))
	out := make([]StorySource, 0, len(sources))
	for _, s := range sources {
		if s.URI == "" {
			continue
		}
		if _, ok := seen[s.URI]; ok {
			continue
		}
		seen[s.URI] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ResolveCrossLink returns the story a cross-link annotation points
// at. Cross-links are title-keyed soft references within the same
// briefing; a dangling title resolves to nothing.
func (b *Briefing) ResolveCrossLink(a Annotation) (Story, bool) {
	if a.CrossLinkStoryTitle == "" {
		return Story{}, false
	}
	for _, s := range b.Content.Stories {
		if s.Title == a.CrossLinkStoryTitle {
			return s, true
		}
	}
	return Story{}, false
}
