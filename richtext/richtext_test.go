package richtext

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/eringen/waypost/content"
)

func TestRenderBasicMarkdown(t *testing.T) {
	out, err := Render(content.Fragment{Text: "Hello **world**"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Errorf("Render = %q, want bold markup", out)
	}
}

func TestRenderStripsScriptTags(t *testing.T) {
	out, err := Render(content.Fragment{Text: `hi <script>alert("x")</script> there`})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "<script") {
		t.Errorf("Render = %q, script tag survived sanitization", out)
	}
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("Render = %q, surrounding text lost", out)
	}
}

func TestRenderStripsEventHandlers(t *testing.T) {
	out, err := Render(content.Fragment{Text: `<img src="x" onerror="alert(1)">`})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "onerror") {
		t.Errorf("Render = %q, event handler survived sanitization", out)
	}
}

func TestConvertPreservesFragmentOrder(t *testing.T) {
	cmp := Convert([]content.Fragment{
		{Text: "alpha"},
		{Text: "beta"},
		{Text: "gamma"},
	})
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	a := strings.Index(out, "alpha")
	b := strings.Index(out, "beta")
	g := strings.Index(out, "gamma")
	if a < 0 || b < 0 || g < 0 || a > b || b > g {
		t.Errorf("fragments out of order: %q", out)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  []string
		avoid []string
	}{
		{"Hello **bold** world", []string{"Hello", "bold", "world"}, []string{"**"}},
		{"[link text](https://example.com)", []string{"link text"}, []string{"https://example.com", "]("}},
		{"# Heading\n\nbody words", []string{"Heading", "body words"}, []string{"#"}},
	}
	for _, tt := range tests {
		got := PlainText(content.Fragment{Text: tt.input})
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("PlainText(%q) = %q, missing %q", tt.input, got, w)
			}
		}
		for _, a := range tt.avoid {
			if strings.Contains(got, a) {
				t.Errorf("PlainText(%q) = %q, should not contain %q", tt.input, got, a)
			}
		}
	}
}

func TestPlainTextEmpty(t *testing.T) {
	if got := strings.TrimSpace(PlainText(content.Fragment{})); got != "" {
		t.Errorf("PlainText(empty) = %q, want empty", got)
	}
}
