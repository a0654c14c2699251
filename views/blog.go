package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/tagindex"
)

const (
	homeFeatured = 3
	homeRecent   = 6
)

// homeBody shows the newest post as the cover, the next few as featured
// posts and then the recent ones.
func homeBody(cfg folio.SiteConfig, page folio.HomePage) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section id="home" class="hero">`)
		w.f(`<h1>%s</h1>`, esc(cfg.Name))
		if cfg.Description != "" {
			w.f(`<p>%s</p>`, esc(cfg.Description))
		}
		w.raw(`</section>`)

		posts := page.Posts
		if len(posts) == 0 {
			w.raw(`<section class="recent"><p class="empty">No posts yet.</p></section>`)
			w.component(categoryChooser(page.Categories, "", page.Counts))
			return
		}
		w.component(coverSection(posts[0]))
		posts = posts[1:]

		featured := posts[:min(homeFeatured, len(posts))]
		if len(featured) > 0 {
			w.raw(`<section class="featured"><h2>Featured Posts</h2>`)
			w.component(postGrid(featured))
			w.raw(`</section>`)
		}
		posts = posts[len(featured):]

		if len(posts) > 0 {
			w.raw(`<section class="recent"><h2>Recent Posts</h2>`)
			w.component(postGrid(posts[:min(homeRecent, len(posts))]))
			if len(posts) > homeRecent {
				w.f(`<a class="more" href="%s">View all</a>`, esc(folio.CategoryURL(tagindex.All)))
			}
			w.raw(`</section>`)
		}

		w.component(categoryChooser(page.Categories, "", page.Counts))
	})
}

func coverSection(p folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		link := "/blog/" + folio.PathEscape(p.Slug) + "/"
		w.raw(`<section class="cover">`)
		if p.Image != "" {
			w.f(`<a href="%s"><img src="%s" alt="%s"></a>`, esc(link), esc(p.Image), esc(p.Title))
		}
		w.raw(`<div class="cover-text">`)
		tag, id := p.PrimaryCategory()
		tagChip(w, "tag", tag, id)
		w.f(`<h2><a href="%s">%s</a></h2>`, esc(link), esc(p.Title))
		w.f(`<time datetime="%s">%s</time>`, esc(p.Date), esc(folio.FormatDate(p.Date)))
		if p.Summary != "" {
			w.f(`<p>%s</p>`, esc(p.Summary))
		}
		w.f(`<a class="more" href="%s">Read more</a>`, esc(link))
		w.raw(`</div></section>`)
	})
}

func postGrid(posts []folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div class="post-grid">`)
		for _, p := range posts {
			w.component(postCard(p))
		}
		w.raw(`</div>`)
	})
}

func postCard(p folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		link := "/blog/" + folio.PathEscape(p.Slug) + "/"
		w.raw(`<article class="post-card">`)
		if p.Image != "" {
			w.f(`<a href="%s"><img src="%s" alt="%s" loading="lazy"></a>`, esc(link), esc(p.Image), esc(p.Title))
		}
		tag, id := p.PrimaryCategory()
		tagChip(w, "tag", tag, id)
		w.f(`<h3><a href="%s">%s</a></h3>`, esc(link), esc(p.Title))
		w.f(`<time datetime="%s">%s</time>`, esc(p.Date), esc(folio.FormatDate(p.Date)))
		if p.Summary != "" {
			w.f(`<p>%s</p>`, esc(p.Summary))
		}
		w.raw(`</article>`)
	})
}

// tagChip links tag to its category. A tag without letters or digits has no
// route and is shown as plain text.
func tagChip(w *writer, class, tag, id string) {
	switch {
	case tag == "":
	case id == "":
		w.f(`<span%s>#%s</span>`, classAttr(class), esc(tag))
	default:
		w.f(`<a%s href="%s">#%s</a>`, classAttr(class), esc(folio.CategoryURL(id)), esc(tag))
	}
}

func classAttr(class string) string {
	if class == "" {
		return ""
	}
	return ` class="` + class + `"`
}

// categoryChooser links every identifier to its route. active marks the
// current one; counts, when given, are shown next to each entry.
func categoryChooser(ids []string, active string, counts map[string]int) templ.Component {
	return component(func(w *writer) {
		w.raw(`<nav class="categories" aria-label="Categories">`)
		for _, id := range ids {
			if id == "" {
				continue
			}
			class := "category"
			current := ""
			if id == active {
				class += " active"
				current = ` aria-current="page"`
			}
			w.f(`<a class="%s" href="%s"%s>#%s`, class, esc(folio.CategoryURL(id)), current, esc(id))
			if n, ok := counts[id]; ok {
				w.f(` <span class="count">%d</span>`, n)
			}
			w.raw(`</a>`)
		}
		w.raw(`</nav>`)
	})
}

func postBody(page folio.PostPage) templ.Component {
	p := page.Post
	return component(func(w *writer) {
		w.raw(`<article id="post" class="post">`)
		if p.Image != "" {
			w.f(`<img class="cover" src="%s" alt="%s">`, esc(p.Image), esc(p.Title))
		}
		w.f(`<h1>%s</h1>`, esc(p.Title))
		w.component(details(page))
		if p.Summary != "" {
			w.f(`<p class="summary">%s</p>`, esc(p.Summary))
		}
		w.raw(`<div class="prose">`)
		w.component(markdown.Markdown(p.Content))
		w.raw(`</div>`)
		if len(p.Tags) > 0 {
			w.raw(`<ul class="tags">`)
			for _, t := range p.Tags {
				w.raw(`<li>`)
				tagChip(w, "", t, tagindex.CategoryOf(t))
				w.raw(`</li>`)
			}
			w.raw(`</ul>`)
		}
		w.raw(`</article>`)

		if len(page.Related) > 0 {
			w.raw(`<section class="related"><h2>Related Posts</h2>`)
			w.component(postGrid(page.Related))
			w.raw(`</section>`)
		}
	})
}

// details is the bar under an article title: date, views, reading time and
// the first tag's category.
func details(page folio.PostPage) templ.Component {
	p := page.Post
	return component(func(w *writer) {
		w.raw(`<div class="details">`)
		w.f(`<time datetime="%s">%s</time>`, esc(p.Date), esc(folio.FormatDate(p.Date)))
		if page.Counted {
			w.f(`<span data-views-slug="%s">%s</span>`, esc(p.Slug), viewsLabel(page.Views))
		}
		w.f(`<span>%d min read</span>`, markdown.ReadingTime(p.Content))
		tag, id := p.PrimaryCategory()
		tagChip(w, "", tag, id)
		w.raw(`</div>`)
	})
}

func viewsLabel(n int64) string {
	if n == 1 {
		return "1 view"
	}
	return strconv.FormatInt(n, 10) + " views"
}

func categoryBody(page folio.CategoryPage) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="category-page">`)
		w.f(`<h1>#%s</h1>`, esc(page.Slug))
		w.raw(`<p>Discover more categories and expand your knowledge!</p>`)
		w.raw(`</section>`)
		w.component(categoryChooser(page.Categories, page.Slug, nil))
		if len(page.Posts) == 0 {
			w.raw(`<p class="empty">No posts in this category.</p>`)
			return
		}
		w.component(postGrid(page.Posts))
	})
}

func errorBody(title, message string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="error-page">`)
		w.f(`<h1>%s</h1><p>%s</p>`, esc(title), esc(message))
		w.raw(`<a href="/">Back home</a></section>`)
	})
}
