package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "Blog", cfg.Name)
	assert.Equal(t, "Blog", cfg.ShortName)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/blog.db", cfg.DatabasePath)
	assert.True(t, cfg.AnalyticsEnabled)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
	assert.Equal(t, "dark", cfg.DefaultTheme)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_NAME", "Notes")
	t.Setenv("SITE_URL", "https://example.com/")
	t.Setenv("POST_CACHE_TTL", "30s")
	t.Setenv("ANALYTICS_ENABLED", "false")
	t.Setenv("DEFAULT_THEME", "light")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "Notes", cfg.Name)
	assert.Equal(t, "https://example.com", cfg.URL)
	assert.Equal(t, 30*time.Second, cfg.PostCacheTTL)
	assert.False(t, cfg.AnalyticsEnabled)
	assert.Equal(t, "light", cfg.DefaultTheme)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SITE_AUTHOR=Ada\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SITE_AUTHOR") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", cfg.Author)
}

func TestSetDefaultsNormalizesTheme(t *testing.T) {
	cfg := SiteConfig{DefaultTheme: "purple"}
	cfg.setDefaults()
	assert.Equal(t, "dark", cfg.DefaultTheme)
}
