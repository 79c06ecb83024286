package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/eringen/waypost/content"
)

func renderToString(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func testSite() SiteConfig {
	return SiteConfig{
		Name:           "Example Blog",
		URL:            "https://blog.example.com",
		CommentsScript: "https://comments.example.com/widget.js",
		Locale:         "en_US",
	}
}

func testPost() PostView {
	return PostView{
		Slug:        "hello-world",
		Title:       "Hello World",
		Author:      "Erin",
		BannerURL:   "https://cdn.example.com/banner.png",
		PublishedOn: "2 Jan 2024",
		ReadingTime: 3,
		Sections: []Section{
			{Heading: "Intro", Body: []content.Fragment{{Text: "Some **body** text"}}},
		},
	}
}

func TestPostPageBasics(t *testing.T) {
	out := renderToString(t, Post(testSite(), testPost(), false))

	for _, want := range []string{
		"<title>Hello World | Example Blog</title>",
		"https://cdn.example.com/banner.png",
		"Erin",
		"2 Jan 2024",
		"3 min read",
		"<h2>Intro</h2>",
		"<strong>body</strong>",
		"https://comments.example.com/widget.js",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestPostPageSectionOrder(t *testing.T) {
	post := testPost()
	post.Sections = []Section{
		{Heading: "Alpha"},
		{Heading: "Beta"},
		{Heading: "Gamma"},
	}
	out := renderToString(t, Post(testSite(), post, false))
	a := strings.Index(out, "Alpha")
	b := strings.Index(out, "Beta")
	g := strings.Index(out, "Gamma")
	if a < 0 || b < 0 || g < 0 || a > b || b > g {
		t.Errorf("sections rendered out of order")
	}
}

func TestPostPageNeighborLinks(t *testing.T) {
	post := testPost()
	out := renderToString(t, Post(testSite(), post, false))
	if strings.Contains(out, "Previous post") || strings.Contains(out, "Next post") {
		t.Error("navigation rendered with no neighbors")
	}

	post.Prev = &NeighborLink{Slug: "older", Title: "Older"}
	out = renderToString(t, Post(testSite(), post, false))
	if !strings.Contains(out, "Previous post") || !strings.Contains(out, `href="/blog/older/"`) {
		t.Error("previous link missing")
	}
	if strings.Contains(out, "Next post") {
		t.Error("next link rendered with no next neighbor")
	}

	post.Next = &NeighborLink{Slug: "newer", Title: "Newer"}
	out = renderToString(t, Post(testSite(), post, false))
	if !strings.Contains(out, "Next post") || !strings.Contains(out, `href="/blog/newer/"`) {
		t.Error("next link missing")
	}
}

func TestPostPagePreviewBanner(t *testing.T) {
	out := renderToString(t, Post(testSite(), testPost(), true))
	if !strings.Contains(out, `href="/exit-preview"`) {
		t.Error("preview mode missing exit-preview link")
	}

	out = renderToString(t, Post(testSite(), testPost(), false))
	if strings.Contains(out, "exit-preview") {
		t.Error("exit-preview link rendered outside preview mode")
	}
}

func TestPostPageEditedLine(t *testing.T) {
	post := testPost()
	out := renderToString(t, Post(testSite(), post, false))
	if strings.Contains(out, "Last edited") {
		t.Error("edited line rendered for never-edited post")
	}

	post.EditedOn = "5 Jan 2024, 17:45"
	out = renderToString(t, Post(testSite(), post, false))
	if !strings.Contains(out, "Last edited 5 Jan 2024, 17:45") {
		t.Error("edited line missing")
	}
}

func TestPostPageNoCommentsWithoutScript(t *testing.T) {
	cfg := testSite()
	cfg.CommentsScript = ""
	out := renderToString(t, Post(cfg, testPost(), false))
	if strings.Contains(out, "post-comments") {
		t.Error("comments section rendered without a widget script")
	}
}

func TestPostPageEscapesTitle(t *testing.T) {
	post := testPost()
	post.Title = `<script>alert("x")</script>`
	out := renderToString(t, Post(testSite(), post, false))
	if strings.Contains(out, "<script>alert") {
		t.Error("title not escaped")
	}
}

func TestHomeListsPosts(t *testing.T) {
	out := renderToString(t, Home(testSite(), []PostSummary{
		{Slug: "one", Title: "One", PublishedOn: "1 Jan 2024", Author: "Erin"},
		{Slug: "two", Title: "Two", PublishedOn: "2 Jan 2024", Author: "Erin"},
	}))
	if !strings.Contains(out, `href="/blog/one/"`) || !strings.Contains(out, `href="/blog/two/"`) {
		t.Errorf("home page missing post links: %q", out)
	}
}

func TestLoadingPage(t *testing.T) {
	out := renderToString(t, Loading(testSite()))
	if !strings.Contains(out, "Loading") {
		t.Error("loading indicator missing")
	}
}

func TestErrorPages(t *testing.T) {
	if out := renderToString(t, NotFound(testSite())); !strings.Contains(out, "404") {
		t.Error("404 page missing status text")
	}
	if out := renderToString(t, ServerError(testSite())); !strings.Contains(out, "500") {
		t.Error("500 page missing status text")
	}
}
