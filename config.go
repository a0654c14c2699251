package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// SiteConfig holds all configuration for a folio site. LoadConfig fills it
// from the environment; programs that build it by hand get the same
// defaults from New.
type SiteConfig struct {
	Name        string `env:"SITE_NAME" envDefault:"Blog"`
	ShortName   string `env:"SITE_SHORT_NAME"` // manifest short_name, defaults to Name
	URL         string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	Description string `env:"SITE_DESCRIPTION"`
	Author      string `env:"SITE_AUTHOR"`

	Addr         string `env:"ADDR" envDefault:":3000"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/blog.db"`

	// ContentDir, when set, is imported into the database at startup.
	ContentDir   string `env:"CONTENT_DIR"`
	WatchContent bool   `env:"WATCH_CONTENT"`

	AnalyticsEnabled      bool   `env:"ANALYTICS_ENABLED" envDefault:"true"`
	AnalyticsDatabasePath string `env:"ANALYTICS_DATABASE_PATH" envDefault:"data/analytics.db"`
	MetricsEnabled        bool   `env:"METRICS_ENABLED" envDefault:"true"`

	AdminPassword string `env:"ADMIN_PASSWORD"`
	SessionSecret string `env:"ADMIN_SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	PostCacheTTL time.Duration `env:"POST_CACHE_TTL" envDefault:"5m"`
	DefaultTheme string        `env:"DEFAULT_THEME" envDefault:"dark"`
}

// LoadConfig reads the given .env files (".env" when none are named) if they
// exist, then parses SiteConfig from the environment.
func LoadConfig(files ...string) (SiteConfig, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("folio: load env file: %w", err)
	}
	cfg, err := env.ParseAs[SiteConfig]()
	if err != nil {
		return SiteConfig{}, fmt.Errorf("folio: parse config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.ShortName == "" {
		c.ShortName = c.Name
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.DefaultTheme != themeLight {
		c.DefaultTheme = themeDark
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
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

// WithRegistry makes the App register its metrics on reg instead of a
// private registry. /metrics serves whatever reg gathers.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}
