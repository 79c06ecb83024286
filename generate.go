package waypost

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/eringen/waypost/content"
	"github.com/eringen/waypost/views"
)

// Generator produces a fully static rendering of the site. It is the
// framework-independent half of the engine: path enumeration and per-path
// rendering are plain functions of the content repository's data, so a build
// either succeeds completely or fails on the first fetch error.
type Generator struct {
	Config  SiteConfig
	Content *content.Client
	Views   ViewFuncs
}

// NewGenerator creates a Generator from the site configuration.
func NewGenerator(cfg SiteConfig, v ViewFuncs) *Generator {
	cfg.setDefaults()
	v.fillDefaults()
	return &Generator{
		Config: cfg,
		Content: content.NewClient(cfg.ContentAPIURL,
			content.WithToken(cfg.ContentToken),
			content.WithDocumentType(cfg.ContentDocType),
		),
		Views: v,
	}
}

// Paths enumerates every valid post path. This is phase one of the static
// build contract.
func (g *Generator) Paths(ctx context.Context) ([]string, error) {
	return g.Content.ListSlugs(ctx)
}

// RenderPost fetches one post with its neighbors and writes the rendered
// page to w. This is phase two: a pure function from repository data to
// markup, with no preview state involved.
func (g *Generator) RenderPost(ctx context.Context, w io.Writer, slug string) error {
	doc, err := g.Content.GetPost(ctx, slug, "")
	if err != nil {
		return err
	}
	prev, err := g.Content.Neighbor(ctx, content.Previous, doc.ID)
	if err != nil {
		return err
	}
	next, err := g.Content.Neighbor(ctx, content.Next, doc.ID)
	if err != nil {
		return err
	}
	cfg := g.Config.viewConfig()
	post := views.BuildPost(cfg, doc, prev, next)
	return g.Views.Post(cfg, post, false).Render(ctx, w)
}

// Generate writes the whole site under outDir: the home page, one directory
// per post, a loading fallback, the sitemap, and the RSS feed. Any fetch
// failure aborts the build; nothing is retried.
func (g *Generator) Generate(ctx context.Context, outDir string) error {
	docs, err := g.Content.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("waypost: generate: %w", err)
	}

	cfg := g.Config.viewConfig()

	if err := g.writeComponent(ctx, filepath.Join(outDir, "index.html"),
		g.Views.Home(cfg, views.BuildSummaries(cfg, docs))); err != nil {
		return err
	}
	if err := g.writeComponent(ctx, filepath.Join(outDir, "fallback.html"),
		g.Views.Loading(cfg)); err != nil {
		return err
	}
	if err := g.writeComponent(ctx, filepath.Join(outDir, "404.html"),
		g.Views.NotFound(cfg)); err != nil {
		return err
	}

	for _, d := range docs {
		path := filepath.Join(outDir, "blog", d.UID, "index.html")
		if err := g.writeFile(path, func(w io.Writer) error {
			return g.RenderPost(ctx, w, d.UID)
		}); err != nil {
			return fmt.Errorf("waypost: generate %s: %w", d.UID, err)
		}
	}

	if err := g.writeFile(filepath.Join(outDir, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, g.Config, docs)
	}); err != nil {
		return err
	}
	return g.writeFile(filepath.Join(outDir, "feed.xml"), func(w io.Writer) error {
		return writeRSS(w, g.Config, docs)
	})
}

func (g *Generator) writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	return g.writeFile(path, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

func (g *Generator) writeFile(path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
