// Package waypost is a blog front-end engine built with Go, Echo, and templ.
// It fetches posts from an external headless content repository, derives
// reading time and localized dates, and renders post pages with prev/next
// navigation, preview mode, and a delegated comments widget — either as a
// live HTTP server or as a statically generated site.
//
// Users may provide their own templ components via the ViewFuncs struct;
// waypost ships working defaults and handles all fetching, handler logic,
// and middleware.
package waypost

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/eringen/waypost/analytics"
	"github.com/eringen/waypost/content"
	"github.com/eringen/waypost/views"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages. Any nil field falls back to the built-in component.
type ViewFuncs struct {
	Home        func(cfg views.SiteConfig, posts []views.PostSummary) templ.Component
	Post        func(cfg views.SiteConfig, post views.PostView, preview bool) templ.Component
	Loading     func(cfg views.SiteConfig) templ.Component
	NotFound    func(cfg views.SiteConfig) templ.Component
	ServerError func(cfg views.SiteConfig) templ.Component
}

func (v *ViewFuncs) fillDefaults() {
	if v.Home == nil {
		v.Home = views.Home
	}
	if v.Post == nil {
		v.Post = views.Post
	}
	if v.Loading == nil {
		v.Loading = views.Loading
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central waypost application. It wires together the content
// client, handlers, middleware, and view components.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *content.Client
	Views   ViewFuncs

	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a waypost App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.fillDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     v,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the content client, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.ContentAPIURL == "" && a.Content == nil {
		return fmt.Errorf("waypost: ContentAPIURL is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("waypost: SessionSecret is required")
	}

	if a.Content == nil {
		a.Content = content.NewClient(a.Config.ContentAPIURL,
			content.WithToken(a.Config.ContentToken),
			content.WithDocumentType(a.Config.ContentDocType),
		)
	}

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("waypost: init analytics: %w", err)
		}
		a.analyticsStore = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("waypost: init analytics salt: %w", err)
		}
		stopCleanup, err := store.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour)
		if err != nil {
			return fmt.Errorf("waypost: start analytics cleanup: %w", err)
		}
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/metrics", echoprometheus.NewHandler())

	e.GET("/", a.handleHome)
	e.GET("/blog/", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/preview", a.handlePreview)
	e.GET("/exit-preview", a.handleExitPreview)

	if a.analyticsStore != nil {
		h := analytics.NewHandler(a.analyticsStore)
		h.RegisterRoutes(e)
		e.Use(analytics.Middleware(a.analyticsStore))
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("waypost: required environment variable %s is not set", key)
	}
	return v
}
