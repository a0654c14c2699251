package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/tagindex"
)

func (a *App) handleHome(c echo.Context) error {
	// Old tag links (?tag=Go) moved to category routes.
	if tag := strings.TrimSpace(c.QueryParam("tag")); tag != "" && tagindex.CategoryOf(tag) != "" {
		return c.Redirect(http.StatusMovedPermanently, TagURL(tag))
	}
	ix, err := a.Cache.Categories()
	if err != nil {
		return err
	}
	page := HomePage{
		Meta:       a.pageMeta(c, a.Config.Name, a.Config.Description, "/", "website"),
		Posts:      ix.Posts(tagindex.All),
		Categories: ix.Identifiers,
		Counts:     ix.Counts(),
	}
	a.metrics.PageRendered("home")
	if partial(c) == "home" {
		return Render(c, a.Views.HomePartial(page))
	}
	return Render(c, a.Views.Home(page))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return a.renderNotFound(c)
		}
		return err
	}
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	page := PostPage{
		Meta:    a.pageMeta(c, post.Title, post.Summary, "/blog/"+post.Slug+"/", "article"),
		Post:    post,
		Related: RelatedPosts(post, posts),
		Counted: a.analyticsStore != nil,
	}
	if a.analyticsStore != nil {
		views, err := a.analyticsStore.Count(c.Request().Context(), slug)
		if err != nil {
			c.Logger().Warnf("read views for %s: %v", slug, err)
		}
		page.Views = views
	}
	a.metrics.PageRendered("post")
	if partial(c) == "post" {
		return Render(c, a.Views.PostPartial(page))
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) handleSitemap(c echo.Context) error {
	ix, err := a.Cache.Categories()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, ix)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + a.Config.URL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) renderNotFound(c echo.Context) error {
	a.metrics.PageRendered("not_found")
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.pageMeta(c, "Not found", "", c.Request().URL.Path, "website")))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.pageMeta(c, "Server error", "", c.Request().URL.Path, "website")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// pageMeta fills the head metadata of a page. path is site-relative.
func (a *App) pageMeta(c echo.Context, title, description, path, ogType string) PageMeta {
	if description == "" {
		description = a.Config.Description
	}
	return PageMeta{
		Title:       title,
		Description: description,
		URL:         a.Config.URL + path,
		OGType:      ogType,
		Theme:       a.ThemeFrom(c),
	}
}
