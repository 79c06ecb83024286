package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/waypost/richtext"
)

// The default components are plain templ.ComponentFunc implementations, so
// the engine works out of the box without a template compile step. Users can
// swap any of them via ViewFuncs.

func esc(s string) string {
	return html.EscapeString(s)
}

// page wraps body markup in the shared document shell.
func page(ctx context.Context, w io.Writer, cfg SiteConfig, meta PageMeta, body func(buf *bytes.Buffer) error) error {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
	buf.WriteString("<meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
	buf.WriteString("<title>" + esc(meta.Title) + "</title>")
	if meta.Description != "" {
		buf.WriteString("<meta name=\"description\" content=\"" + esc(meta.Description) + "\">")
	}
	if meta.URL != "" {
		buf.WriteString("<link rel=\"canonical\" href=\"" + esc(meta.URL) + "\">")
		buf.WriteString("<meta property=\"og:url\" content=\"" + esc(meta.URL) + "\">")
	}
	buf.WriteString("<meta property=\"og:title\" content=\"" + esc(meta.Title) + "\">")
	if meta.OGType != "" {
		buf.WriteString("<meta property=\"og:type\" content=\"" + esc(meta.OGType) + "\">")
	}
	buf.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\">")
	buf.WriteString("</head><body>")
	buf.WriteString("<header class=\"site-header\"><a href=\"/\" class=\"site-name\">" + esc(cfg.Name) + "</a></header>")
	buf.WriteString("<main>")
	if err := body(&buf); err != nil {
		return err
	}
	buf.WriteString("</main></body></html>")
	_, err := w.Write(buf.Bytes())
	return err
}

// Post renders the full post page: header with metadata, one section per
// content group, neighbor navigation, the preview banner when active, and
// the delegated comments widget.
func Post(cfg SiteConfig, post PostView, preview bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title:       post.Title + " | " + cfg.Name,
			Description: post.Subtitle,
			URL:         buildURL(cfg.URL, "blog", post.Slug),
			OGType:      "article",
		}
		return page(ctx, w, cfg, meta, func(buf *bytes.Buffer) error {
			if preview {
				buf.WriteString("<aside class=\"preview-banner\">Preview mode — ")
				buf.WriteString("<a href=\"/exit-preview\">Exit preview</a></aside>")
			}
			buf.WriteString("<article class=\"post\">")
			if post.BannerURL != "" {
				buf.WriteString("<img class=\"post-banner\" src=\"" + esc(post.BannerURL) + "\" alt=\"" + esc(post.BannerAlt) + "\">")
			}
			buf.WriteString("<h1>" + esc(post.Title) + "</h1>")
			if post.Subtitle != "" {
				buf.WriteString("<p class=\"post-subtitle\">" + esc(post.Subtitle) + "</p>")
			}
			buf.WriteString("<div class=\"post-meta\">")
			buf.WriteString("<span class=\"post-author\">" + esc(post.Author) + "</span>")
			buf.WriteString("<time class=\"post-date\">" + esc(post.PublishedOn) + "</time>")
			buf.WriteString("<span class=\"post-reading-time\">" + strconv.Itoa(post.ReadingTime) + " min read</span>")
			buf.WriteString("</div>")
			if post.EditedOn != "" {
				buf.WriteString("<p class=\"post-edited\">Last edited " + esc(post.EditedOn) + "</p>")
			}
			for _, s := range post.Sections {
				buf.WriteString("<section>")
				if s.Heading != "" {
					buf.WriteString("<h2>" + esc(s.Heading) + "</h2>")
				}
				buf.WriteString("<div class=\"post-body\">")
				if err := richtext.Convert(s.Body).Render(ctx, buf); err != nil {
					return err
				}
				buf.WriteString("</div></section>")
			}
			buf.WriteString("</article>")
			writeNeighborNav(buf, post.Prev, post.Next)
			writeComments(buf, cfg)
			return nil
		})
	})
}

func writeNeighborNav(buf *bytes.Buffer, prev, next *NeighborLink) {
	if prev == nil && next == nil {
		return
	}
	buf.WriteString("<nav class=\"post-nav\">")
	if prev != nil {
		buf.WriteString("<a class=\"post-nav-prev\" href=\"/blog/" + esc(prev.Slug) + "/\">")
		buf.WriteString("<span>" + esc(prev.Title) + "</span><small>Previous post</small></a>")
	}
	if next != nil {
		buf.WriteString("<a class=\"post-nav-next\" href=\"/blog/" + esc(next.Slug) + "/\">")
		buf.WriteString("<span>" + esc(next.Title) + "</span><small>Next post</small></a>")
	}
	buf.WriteString("</nav>")
}

func writeComments(buf *bytes.Buffer, cfg SiteConfig) {
	if cfg.CommentsScript == "" {
		return
	}
	// The widget owns this section entirely; the engine only mounts it.
	buf.WriteString("<section class=\"post-comments\"><div id=\"comments\"></div>")
	buf.WriteString("<script src=\"" + esc(cfg.CommentsScript) + "\" async></script></section>")
}

// Home renders the post listing page.
func Home(cfg SiteConfig, posts []PostSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title:       cfg.Name,
			Description: cfg.Description,
			URL:         buildURL(cfg.URL),
			OGType:      "website",
		}
		return page(ctx, w, cfg, meta, func(buf *bytes.Buffer) error {
			buf.WriteString("<ul class=\"post-list\">")
			for _, p := range posts {
				buf.WriteString("<li><a href=\"/blog/" + esc(p.Slug) + "/\">")
				buf.WriteString("<h2>" + esc(p.Title) + "</h2>")
				if p.Subtitle != "" {
					buf.WriteString("<p>" + esc(p.Subtitle) + "</p>")
				}
				buf.WriteString("<div class=\"post-meta\"><time>" + esc(p.PublishedOn) + "</time>")
				buf.WriteString("<span>" + esc(p.Author) + "</span></div>")
				buf.WriteString("</a></li>")
			}
			buf.WriteString("</ul>")
			return nil
		})
	})
}

// Loading is the fallback shown while a page has no complete view model yet,
// e.g. the static fallback document.
func Loading(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{Title: cfg.Name}
		return page(ctx, w, cfg, meta, func(buf *bytes.Buffer) error {
			buf.WriteString("<p class=\"loading\">Loading…</p>")
			return nil
		})
	})
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{Title: "Not found | " + cfg.Name}
		return page(ctx, w, cfg, meta, func(buf *bytes.Buffer) error {
			buf.WriteString("<h1>404</h1><p>This page does not exist. <a href=\"/\">Back home</a></p>")
			return nil
		})
	})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{Title: "Something went wrong | " + cfg.Name}
		return page(ctx, w, cfg, meta, func(buf *bytes.Buffer) error {
			buf.WriteString("<h1>500</h1><p>Something went wrong. <a href=\"/\">Back home</a></p>")
			return nil
		})
	})
}
