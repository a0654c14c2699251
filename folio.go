// Package folio is a personal blog and portfolio server built with Echo,
// templ and SQLite. Posts are grouped into category routes derived from their
// tags (see package tagindex); the server also counts article views, keeps
// a light/dark theme cookie and serves RSS, a sitemap and a web manifest.
//
// Callers provide the templates through ViewFuncs; package views has a
// default set.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/eringen/folio/analytics"
	"github.com/eringen/folio/ratelimit"
)

// ViewFuncs holds the templ components the App renders pages with.
type ViewFuncs struct {
	Home             func(page HomePage) templ.Component
	HomePartial      func(page HomePage) templ.Component
	Post             func(page PostPage) templ.Component
	PostPartial      func(page PostPage) templ.Component
	Category         func(page CategoryPage) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(page AdminPage) templ.Component
	AdminFormPartial func(post BlogPost, csrfToken string) templ.Component
	NotFound         func(meta PageMeta) templ.Component
	ServerError      func(meta PageMeta) templ.Component
}

// App is the central folio application. It wires together the store,
// cache, handlers, middleware and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	loginLimiter   *ratelimit.Limiter
	analyticsStore *analytics.Store
	viewsHandler   *analytics.Handler
	registry       *prometheus.Registry
	metrics        *Metrics
	customRoutes   []func(*App)
	staticDir      string
	ready          bool
}

// New creates a folio App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the databases and registers middleware and routes. It is
// called by Start; programs that only need the store (such as an import
// command) or tests serving through a.Echo call it directly.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	if a.Config.MetricsEnabled {
		if a.registry == nil {
			a.registry = prometheus.NewRegistry()
			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		a.metrics = NewMetrics(a.registry)
	}

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL, a.metrics)
	a.loginLimiter = ratelimit.New(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		a.viewsHandler = analytics.NewHandler(analyticsStore,
			analytics.WithExists(a.Cache.Exists),
			analytics.WithIncrementHook(func(string) { a.metrics.ViewCounted() }),
		)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the App up, imports the content directory when configured and
// serves until ctx is done, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if a.Config.AdminPassword == "" {
		return errors.New("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}
	if err := a.Setup(); err != nil {
		return err
	}

	if dir := a.Config.ContentDir; dir != "" {
		n, err := a.ImportContent(ctx, dir)
		if err != nil {
			a.Echo.Logger.Warnf("import %s: %v", dir, err)
		}
		a.Echo.Logger.Infof("imported %d documents from %s", n, dir)
		if a.Config.WatchContent {
			go func() {
				if err := a.WatchContent(ctx, dir); err != nil {
					a.Echo.Logger.Errorf("watch %s: %v", dir, err)
				}
			}()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve embedded assets under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/folio.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/manifest.webmanifest", a.handleManifest)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/categories/", handleCategoriesRedirect)
	e.GET("/categories/:slug/", a.handleCategory)
	e.POST("/theme/", a.handleTheme)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.POST("/admin/post/:slug/cover/", a.handleCoverUpload)

	if a.viewsHandler != nil {
		a.viewsHandler.RegisterRoutes(e.Group(""))
	}
	if a.metrics != nil {
		e.GET("/metrics", a.metrics.Handler())
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.viewsHandler != nil {
		a.viewsHandler.Close()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.analyticsStore != nil {
		errs = append(errs, a.analyticsStore.Close())
	}
	return errors.Join(errs...)
}
