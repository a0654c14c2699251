package folio

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	themeCookie = "theme"
	themeDark   = "dark"
	themeLight  = "light"
)

// ThemeFrom returns the visitor's theme, "dark" or "light", falling back to
// the configured default.
func (a *App) ThemeFrom(c echo.Context) string {
	if ck, err := c.Cookie(themeCookie); err == nil {
		switch ck.Value {
		case themeDark, themeLight:
			return ck.Value
		}
	}
	return a.Config.DefaultTheme
}

// handleTheme flips the theme cookie and sends the visitor back where they
// came from.
func (a *App) handleTheme(c echo.Context) error {
	next := themeLight
	if a.ThemeFrom(c) == themeLight {
		next = themeDark
	}
	if v := c.FormValue("theme"); v == themeDark || v == themeLight {
		next = v
	}
	c.SetCookie(&http.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	})
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, safeReturn(c.FormValue("return"), c.Request().Referer()))
}

// safeReturn picks a same-site path to redirect to, preferring ret over the
// referer and falling back to "/".
func safeReturn(ret, referer string) string {
	for _, cand := range []string{ret, referer} {
		if cand == "" {
			continue
		}
		u, err := url.Parse(cand)
		if err != nil {
			continue
		}
		p := u.EscapedPath()
		if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
			continue
		}
		if u.RawQuery != "" {
			p += "?" + u.RawQuery
		}
		return p
	}
	return "/"
}
