// Package views is the default look of a folio site. Every page is a
// templ.Component; replace any of them through folio.ViewFuncs.
package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

// Default returns the built-in views for cfg.
func Default(cfg folio.SiteConfig) folio.ViewFuncs {
	return folio.ViewFuncs{
		Home: func(page folio.HomePage) templ.Component {
			return layout(cfg, page.Meta, folio.WebsiteJsonLD(cfg), homeBody(cfg, page))
		},
		HomePartial: func(page folio.HomePage) templ.Component {
			return homeBody(cfg, page)
		},
		Post: func(page folio.PostPage) templ.Component {
			return layout(cfg, page.Meta, folio.BlogPostingJsonLD(page.Post, cfg), postBody(page))
		},
		PostPartial: func(page folio.PostPage) templ.Component {
			return postBody(page)
		},
		Category: func(page folio.CategoryPage) templ.Component {
			return layout(cfg, page.Meta, folio.CollectionPageJsonLD(page, cfg), categoryBody(page))
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return adminShell(cfg, "Sign in", adminLogin(showError, csrfToken))
		},
		AdminDashboard: func(page folio.AdminPage) templ.Component {
			return adminShell(cfg, "Dashboard", adminDashboard(page))
		},
		AdminFormPartial: adminForm,
		NotFound: func(meta folio.PageMeta) templ.Component {
			return layout(cfg, meta, "", errorBody("Page not found", "The page you are looking for does not exist."))
		},
		ServerError: func(meta folio.PageMeta) templ.Component {
			return layout(cfg, meta, "", errorBody("Something went wrong", "Please try again in a moment."))
		},
	}
}
