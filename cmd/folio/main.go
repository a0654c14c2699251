// Command folio serves a folio site and manages its content.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/tagindex"
	"github.com/eringen/folio/views"
)

var version = "dev"

var CLI struct {
	Env     []string `short:"e" help:"Env files to load before reading the environment" default:".env"`
	Verbose bool     `short:"v" help:"Enable verbose logging"`

	Serve struct {
		Static string `help:"Directory served under /public" default:"public"`
	} `cmd:"" default:"1" help:"Start the web server"`

	Import struct {
		Dir string `arg:"" help:"Directory of markdown posts" type:"existingdir"`
	} `cmd:"" help:"Import markdown posts into the database"`

	Categories struct {
		Content string `help:"Read posts from this markdown directory instead of the database" type:"existingdir"`
		Format  string `short:"f" help:"Output format" enum:"text,yaml" default:"text"`
	} `cmd:"" help:"Print the category routes of the published posts"`

	Version struct{} `cmd:"" help:"Print the version"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Name("folio"), kong.Description("A blog and portfolio server."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if ctx.Command() == "version" {
		fmt.Println("folio", version)
		return
	}

	cfg, err := folio.LoadConfig(CLI.Env...)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch ctx.Command() {
	case "serve":
		err = runServe(sigCtx, cfg, CLI.Serve.Static)
	case "import <dir>":
		err = runImport(sigCtx, cfg, CLI.Import.Dir)
	case "categories":
		err = runCategories(os.Stdout, cfg, CLI.Categories.Content, CLI.Categories.Format)
	}
	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cfg folio.SiteConfig, static string) error {
	app := folio.New(cfg, views.Default(cfg), folio.WithStaticDir(static))
	defer app.Close()
	slog.Info("Starting server", "addr", cfg.Addr, "url", cfg.URL)
	return app.Start(ctx)
}

func runImport(ctx context.Context, cfg folio.SiteConfig, dir string) error {
	cfg.MetricsEnabled = false
	cfg.AnalyticsEnabled = false
	app := folio.New(cfg, views.Default(cfg))
	defer app.Close()
	if err := app.Setup(); err != nil {
		return err
	}
	n, err := app.ImportContent(ctx, dir)
	if err != nil {
		slog.Warn("Some documents were skipped", "error", err)
	}
	if n == 0 && err != nil {
		return err
	}
	slog.Info("Imported documents", "count", n, "dir", dir, "database", cfg.DatabasePath)
	return nil
}

type categoryEntry struct {
	ID    string   `yaml:"id"`
	Route string   `yaml:"route"`
	Posts []string `yaml:"posts"`
}

func runCategories(out io.Writer, cfg folio.SiteConfig, dir, format string) error {
	posts, err := loadPosts(cfg, dir)
	if err != nil {
		return err
	}
	ix := tagindex.BuildIndex(posts)
	entries := make([]categoryEntry, 0, len(ix.Identifiers))
	for _, id := range ix.Identifiers {
		e := categoryEntry{ID: id, Posts: []string{}}
		if id != "" {
			e.Route = folio.CategoryURL(id)
		}
		for _, p := range ix.Posts(id) {
			e.Posts = append(e.Posts, p.Slug)
		}
		entries = append(entries, e)
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"categories": entries}); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%-24s %3d  %s\n", e.ID, len(e.Posts), e.Route); err != nil {
			return err
		}
	}
	return nil
}

func loadPosts(cfg folio.SiteConfig, dir string) ([]folio.BlogPost, error) {
	if dir != "" {
		docs, err := content.Load(dir)
		if err != nil {
			slog.Warn("Some documents were skipped", "error", err)
		}
		posts := make([]folio.BlogPost, 0, len(docs))
		for _, d := range docs {
			posts = append(posts, folio.DocumentPost(d))
		}
		return posts, nil
	}
	store, err := folio.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.ListPosts()
}
