package waypost

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	if cfg.Name != "Blog" {
		t.Errorf("Name = %q, want %q", cfg.Name, "Blog")
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":3000")
	}
	if cfg.Locale != "en_US" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "en_US")
	}
	if cfg.ContentDocType != "posts" {
		t.Errorf("ContentDocType = %q, want %q", cfg.ContentDocType, "posts")
	}
	if cfg.AnalyticsRetentionDays != 365 {
		t.Errorf("AnalyticsRetentionDays = %d, want 365", cfg.AnalyticsRetentionDays)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
name: My Blog
url: https://blog.example.com
locale: pt_BR
content_api_url: https://cms.example.com/api
comments_script: https://comments.example.com/widget.js
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "My Blog" {
		t.Errorf("Name = %q, want %q", cfg.Name, "My Blog")
	}
	if cfg.Locale != "pt_BR" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "pt_BR")
	}
	if cfg.ContentAPIURL != "https://cms.example.com/api" {
		t.Errorf("ContentAPIURL = %q", cfg.ContentAPIURL)
	}
	// Defaults still apply to unset fields.
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want default", cfg.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestViewConfigProjection(t *testing.T) {
	cfg := SiteConfig{
		Name:           "N",
		URL:            "U",
		Author:         "A",
		Locale:         "pt_BR",
		CommentsScript: "S",
		SessionSecret:  "secret",
	}
	v := cfg.viewConfig()
	if v.Name != "N" || v.URL != "U" || v.Author != "A" || v.Locale != "pt_BR" || v.CommentsScript != "S" {
		t.Errorf("viewConfig = %+v", v)
	}
}
