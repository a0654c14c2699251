package folio

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/tagindex"
)

// handleCategory lists the posts of one category. Identifiers that no
// published post produces still render the (empty) page, with 404.
func (a *App) handleCategory(c echo.Context) error {
	id := c.Param("slug")
	ix, err := a.Cache.Categories()
	if err != nil {
		return err
	}
	found := ix.Has(id)
	a.metrics.CategoryLookup(found)

	filtered, err := a.Cache.Category(id)
	if err != nil {
		return err
	}
	page := CategoryPage{
		Slug:        id,
		Title:       CategoryTitle(id),
		Description: CategoryDescription(id),
		Posts:       filtered.Matches,
		Categories:  filtered.Identifiers,
	}
	page.Meta = a.pageMeta(c, page.Title, page.Description, CategoryURL(id), "website")

	code := http.StatusOK
	if !found {
		code = http.StatusNotFound
		page.Posts = []BlogPost{}
		page.Categories = ix.Identifiers
	}
	a.metrics.PageRendered("category")
	return RenderStatus(c, code, a.Views.Category(page))
}

func handleCategoriesRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, CategoryURL(tagindex.All))
}
