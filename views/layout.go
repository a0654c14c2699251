package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

// layout wraps body in the site chrome: head metadata, header with the
// theme switch, and footer.
func layout(cfg folio.SiteConfig, meta folio.PageMeta, jsonLD string, body templ.Component) templ.Component {
	return component(func(w *writer) {
		htmlClass := ""
		if meta.Theme == "dark" {
			htmlClass = ` class="dark"`
		}
		title := meta.Title
		if title != cfg.Name {
			title += " | " + cfg.Name
		}
		w.f(`<!DOCTYPE html><html lang="en"%s><head>`, htmlClass)
		w.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.f(`<title>%s</title>`, esc(title))
		w.f(`<meta name="description" content="%s">`, esc(meta.Description))
		w.f(`<link rel="canonical" href="%s">`, esc(meta.URL))
		w.f(`<meta property="og:title" content="%s">`, esc(meta.Title))
		w.f(`<meta property="og:description" content="%s">`, esc(meta.Description))
		w.f(`<meta property="og:url" content="%s">`, esc(meta.URL))
		w.f(`<meta property="og:type" content="%s">`, esc(meta.OGType))
		w.f(`<meta property="og:site_name" content="%s">`, esc(cfg.Name))
		w.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		w.raw(`<link rel="manifest" href="/manifest.webmanifest">`)
		w.f(`<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">`, esc(cfg.Name))
		w.raw(`<link rel="stylesheet" href="/public/styles.css">`)
		if jsonLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script.
			w.f(`<script type="application/ld+json">%s</script>`, jsonLD)
		}
		w.raw(`<script src="/public/folio.js" defer></script>`)
		w.raw(`</head><body class="bg-light text-dark dark:bg-dark dark:text-light">`)

		w.raw(`<header class="site-header">`)
		w.f(`<a class="logo" href="/">%s</a>`, esc(cfg.Name))
		w.raw(`<nav><a href="/">Home</a> <a href="/categories/all/">Categories</a> <a href="/feed.xml">RSS</a></nav>`)
		next, label := "light", "Switch to light mode"
		if meta.Theme != "dark" {
			next, label = "dark", "Switch to dark mode"
		}
		w.raw(`<form class="theme-switch" method="post" action="/theme/">`)
		w.f(`<input type="hidden" name="theme" value="%s">`, next)
		w.f(`<input type="hidden" name="return" value="%s">`, esc(pathOf(meta.URL, cfg.URL)))
		w.f(`<button type="submit" aria-label="%s">%s</button>`, label, themeIcon(meta.Theme))
		w.raw(`</form></header>`)

		w.raw(`<main>`)
		w.component(body)
		w.raw(`</main>`)

		w.raw(`<footer class="site-footer">`)
		if cfg.Author != "" {
			w.f(`<span>&copy; %s</span>`, esc(cfg.Author))
		}
		w.raw(`<a href="/sitemap.xml">Sitemap</a></footer>`)
		w.raw(`</body></html>`)
	})
}

// pathOf strips the site URL from a canonical URL.
func pathOf(canonical, base string) string {
	if p, ok := strings.CutPrefix(canonical, base); ok && strings.HasPrefix(p, "/") {
		return p
	}
	return "/"
}

func themeIcon(theme string) string {
	if theme == "dark" {
		return "&#9728;"
	}
	return "&#9790;"
}
