package waypost

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/waypost/content"
	"github.com/eringen/waypost/views"
)

// SiteConfig holds all configuration for a waypost site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for feeds and meta tags
	Author      string `yaml:"author"`      // Fallback author name
	Locale      string `yaml:"locale"`      // Date locale (default "en_US")

	Addr string `yaml:"addr"` // Listen address (default ":3000")

	ContentAPIURL  string `yaml:"content_api_url"`  // Required: content repository base URL
	ContentToken   string `yaml:"content_token"`    // Repository access token
	ContentDocType string `yaml:"content_doc_type"` // Document type (default "posts")
	CommentsScript string `yaml:"comments_script"`  // Comments widget script URL; empty disables
	SessionSecret  string `yaml:"session_secret"`   // Required when serving: preview cookie secret
	CookieSecure   bool   `yaml:"cookie_secure"`    // Set true for HTTPS

	AnalyticsEnabled       bool   `yaml:"analytics_enabled"`        // Enable page-view analytics
	AnalyticsDatabasePath  string `yaml:"analytics_database_path"`  // Analytics SQLite path
	AnalyticsRetentionDays int    `yaml:"analytics_retention_days"` // Visit retention (default 365)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "en_US"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDocType == "" {
		c.ContentDocType = "posts"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
}

// viewConfig projects the app configuration into the template-facing subset.
func (c SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:           c.Name,
		URL:            c.URL,
		Description:    c.Description,
		Author:         c.Author,
		Locale:         c.Locale,
		CommentsScript: c.CommentsScript,
	}
}

// LoadConfig reads a SiteConfig from a YAML file and applies defaults.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("waypost: read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("waypost: parse config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithContentClient replaces the content repository client, mainly for tests.
func WithContentClient(c *content.Client) Option {
	return func(a *App) {
		a.Content = c
	}
}
