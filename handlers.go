package waypost

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/waypost/content"
	"github.com/eringen/waypost/views"
)

func (a *App) handleHome(c echo.Context) error {
	docs, err := a.Content.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	cfg := a.Config.viewConfig()
	return Render(c, a.Views.Home(cfg, views.BuildSummaries(cfg, docs)))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	ref := previewRef(c)
	ctx := c.Request().Context()

	doc, err := a.Content.GetPost(ctx, slug, ref)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.viewConfig()))
		}
		return err
	}

	// The two neighbor lookups populate disjoint fields; they run in
	// sequence and a missing neighbor is simply a nil result.
	prev, err := a.Content.Neighbor(ctx, content.Previous, doc.ID)
	if err != nil {
		return err
	}
	next, err := a.Content.Neighbor(ctx, content.Next, doc.ID)
	if err != nil {
		return err
	}

	cfg := a.Config.viewConfig()
	post := views.BuildPost(cfg, doc, prev, next)
	return Render(c, a.Views.Post(cfg, post, ref != ""))
}

// handlePreview enters preview mode: the opaque ref token from the content
// platform is kept in the session and overrides which revision is fetched.
func (a *App) handlePreview(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.String(http.StatusBadRequest, "missing preview token")
	}
	if err := setPreviewSession(c, token); err != nil {
		return err
	}
	if slug := c.QueryParam("slug"); slug != "" {
		return c.Redirect(http.StatusSeeOther, "/blog/"+slug+"/")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleExitPreview(c echo.Context) error {
	if err := clearPreviewSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleSitemap(c echo.Context) error {
	docs, err := a.Content.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config, docs)
}

func (a *App) handleFeed(c echo.Context) error {
	docs, err := a.Content.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, docs)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.viewConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
