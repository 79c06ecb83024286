package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/eringen/waypost"
)

// version is set at build time via ldflags.
var version = "dev"

var CLI struct {
	Config  string           `short:"c" help:"YAML configuration file path (optional)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve struct {
		Addr string `help:"Listen address (overrides config)"`
	} `cmd:"" help:"Run the blog as an HTTP server"`

	Build struct {
		Output string `short:"o" help:"Output directory for the generated site" default:"./site"`
	} `cmd:"" help:"Statically generate the whole site"`

	Paths struct{} `cmd:"" help:"List every post path the site would generate"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version})

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "serve":
		if CLI.Serve.Addr != "" {
			cfg.Addr = CLI.Serve.Addr
		}
		if err := runServe(cfg); err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case "build":
		if err := runBuild(cfg, CLI.Build.Output); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "paths":
		if err := runPaths(cfg); err != nil {
			slog.Error("Path enumeration failed", "error", err)
			os.Exit(1)
		}
	}
}

// loadConfig merges the optional YAML file with environment variables; the
// environment wins for secrets so they stay out of config files.
func loadConfig() (waypost.SiteConfig, error) {
	var cfg waypost.SiteConfig
	if CLI.Config != "" {
		var err error
		cfg, err = waypost.LoadConfig(CLI.Config)
		if err != nil {
			return cfg, err
		}
	}
	cfg.Name = waypost.EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = waypost.EnvOr("SITE_URL", cfg.URL)
	cfg.Description = waypost.EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = waypost.EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.Locale = waypost.EnvOr("SITE_LOCALE", cfg.Locale)
	cfg.ContentAPIURL = waypost.EnvOr("CONTENT_API_URL", cfg.ContentAPIURL)
	cfg.ContentToken = waypost.EnvOr("CONTENT_API_TOKEN", cfg.ContentToken)
	cfg.CommentsScript = waypost.EnvOr("COMMENTS_SCRIPT_URL", cfg.CommentsScript)
	cfg.SessionSecret = waypost.EnvOr("SESSION_SECRET", cfg.SessionSecret)
	return cfg, nil
}

func runServe(cfg waypost.SiteConfig) error {
	app := waypost.New(cfg, waypost.ViewFuncs{})
	defer app.Close()
	slog.Info("Starting server", "addr", cfg.Addr, "content_api", cfg.ContentAPIURL)
	return app.Start()
}

func runBuild(cfg waypost.SiteConfig, outDir string) error {
	g := waypost.NewGenerator(cfg, waypost.ViewFuncs{})
	slog.Info("Generating site", "output", outDir, "content_api", cfg.ContentAPIURL)
	if err := g.Generate(context.Background(), outDir); err != nil {
		return err
	}
	slog.Info("Site generated", "output", outDir)
	return nil
}

func runPaths(cfg waypost.SiteConfig) error {
	g := waypost.NewGenerator(cfg, waypost.ViewFuncs{})
	slugs, err := g.Paths(context.Background())
	if err != nil {
		return err
	}
	for _, slug := range slugs {
		fmt.Println("/blog/" + slug + "/")
	}
	return nil
}
