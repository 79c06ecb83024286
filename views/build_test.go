package views

import (
	"strings"
	"testing"
	"time"

	"github.com/eringen/waypost/content"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestReadingTimeEmpty(t *testing.T) {
	if got := ReadingTime(nil); got != 0 {
		t.Errorf("ReadingTime(nil) = %d, want 0", got)
	}
	if got := ReadingTime([]content.ContentGroup{}); got != 0 {
		t.Errorf("ReadingTime(empty) = %d, want 0", got)
	}
}

func TestReadingTimeCeilingBoundary(t *testing.T) {
	tests := []struct {
		tokens int
		want   int
	}{
		{1, 1},
		{179, 1},
		{180, 1},
		{181, 2},
		{360, 2},
		{361, 3},
	}
	for _, tt := range tests {
		groups := []content.ContentGroup{
			{Body: []content.Fragment{{Text: words(tt.tokens)}}},
		}
		if got := ReadingTime(groups); got != tt.want {
			t.Errorf("ReadingTime(%d tokens) = %d, want %d", tt.tokens, got, tt.want)
		}
	}
}

func TestReadingTimeCountsHeadingsAndBody(t *testing.T) {
	// Two groups: "Intro" + "Hello world", then "End" with an empty body.
	// 4 tokens total, one minute.
	groups := []content.ContentGroup{
		{Heading: "Intro", Body: []content.Fragment{{Text: "Hello world"}}},
		{Heading: "End"},
	}
	if got := ReadingTime(groups); got != 1 {
		t.Errorf("ReadingTime = %d, want 1", got)
	}
}

func TestReadingTimeMonotone(t *testing.T) {
	prev := 0
	for _, n := range []int{0, 10, 179, 180, 181, 500, 1000} {
		groups := []content.ContentGroup{
			{Body: []content.Fragment{{Text: words(n)}}},
		}
		got := ReadingTime(groups)
		if got < prev {
			t.Errorf("ReadingTime(%d tokens) = %d, decreased from %d", n, got, prev)
		}
		prev = got
	}
}

func TestFormatDateNilTimestamp(t *testing.T) {
	if got := FormatDate(nil, "en_US"); got != DateUnavailable {
		t.Errorf("FormatDate(nil) = %q, want %q", got, DateUnavailable)
	}
	if got := FormatDateTime(nil, "en_US"); got != DateUnavailable {
		t.Errorf("FormatDateTime(nil) = %q, want %q", got, DateUnavailable)
	}
}

func TestFormatDateLocalized(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	if got := FormatDate(&ts, "en_US"); got != "15 Mar 2024" {
		t.Errorf("FormatDate en_US = %q, want %q", got, "15 Mar 2024")
	}
	if got := FormatDate(&ts, "pt_BR"); got != "15 mar 2024" {
		t.Errorf("FormatDate pt_BR = %q, want %q", got, "15 mar 2024")
	}
}

func TestBuildPost(t *testing.T) {
	first := time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC)
	last := time.Date(2024, time.January, 5, 17, 45, 0, 0, time.UTC)
	doc := content.Document{
		ID:                   "a1",
		UID:                  "my-post",
		FirstPublicationDate: &first,
		LastPublicationDate:  &last,
		Data: content.DocumentData{
			Title:  "My Post",
			Author: "Erin",
			Banner: content.Image{URL: "https://cdn.example.com/banner.png"},
			Content: []content.ContentGroup{
				{Heading: "One", Body: []content.Fragment{{Text: "first section"}}},
				{Heading: "Two", Body: []content.Fragment{{Text: "second section"}}},
			},
		},
	}
	cfg := SiteConfig{Locale: "en_US"}
	prev := &content.NeighborRef{UID: "older", Title: "Older Post"}

	v := BuildPost(cfg, doc, prev, nil)

	if v.Title != "My Post" || v.Author != "Erin" || v.Slug != "my-post" {
		t.Errorf("basic fields wrong: %+v", v)
	}
	if v.PublishedOn != "2 Jan 2024" {
		t.Errorf("PublishedOn = %q, want %q", v.PublishedOn, "2 Jan 2024")
	}
	if v.EditedOn != "5 Jan 2024, 17:45" {
		t.Errorf("EditedOn = %q, want %q", v.EditedOn, "5 Jan 2024, 17:45")
	}
	if v.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", v.ReadingTime)
	}
	if len(v.Sections) != 2 || v.Sections[0].Heading != "One" || v.Sections[1].Heading != "Two" {
		t.Errorf("sections reordered or lost: %+v", v.Sections)
	}
	if v.Prev == nil || v.Prev.Slug != "older" {
		t.Errorf("Prev = %+v, want older", v.Prev)
	}
	if v.Next != nil {
		t.Errorf("Next = %+v, want nil", v.Next)
	}
}

func TestBuildPostNeverEdited(t *testing.T) {
	first := time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC)
	doc := content.Document{
		UID:                  "fresh",
		FirstPublicationDate: &first,
		LastPublicationDate:  &first,
	}
	v := BuildPost(SiteConfig{Locale: "en_US"}, doc, nil, nil)
	if v.EditedOn != "" {
		t.Errorf("EditedOn = %q, want empty when never edited", v.EditedOn)
	}
}

func TestBuildPostNilTimestamps(t *testing.T) {
	v := BuildPost(SiteConfig{Locale: "en_US"}, content.Document{UID: "draft"}, nil, nil)
	if v.PublishedOn != DateUnavailable {
		t.Errorf("PublishedOn = %q, want placeholder", v.PublishedOn)
	}
	if v.EditedOn != "" {
		t.Errorf("EditedOn = %q, want empty", v.EditedOn)
	}
}

func TestBuildPostFallbackAuthor(t *testing.T) {
	v := BuildPost(SiteConfig{Author: "Site Author"}, content.Document{UID: "x"}, nil, nil)
	if v.Author != "Site Author" {
		t.Errorf("Author = %q, want site fallback", v.Author)
	}
}

func TestBuildSummariesPreservesOrder(t *testing.T) {
	docs := []content.Document{
		{UID: "c"}, {UID: "a"}, {UID: "b"},
	}
	got := BuildSummaries(SiteConfig{}, docs)
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i].Slug != want[i] {
			t.Errorf("summaries[%d].Slug = %q, want %q", i, got[i].Slug, want[i])
		}
	}
}
