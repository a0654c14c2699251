package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

func adminShell(cfg folio.SiteConfig, title string, body templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><meta name="robots" content="noindex">`)
		w.f(`<title>%s | %s admin</title>`, esc(title), esc(cfg.Name))
		w.raw(`<link rel="stylesheet" href="/public/styles.css"><script src="/public/htmx.min.js" defer></script>`)
		w.raw(`</head><body class="admin">`)
		w.component(body)
		w.raw(`</body></html>`)
	})
}

func csrfField(token string) string {
	return `<input type="hidden" name="_csrf" value="` + esc(token) + `">`
}

func adminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form class="login" method="post" action="/admin/login/">`)
		w.raw(csrfField(csrfToken))
		if showError {
			w.raw(`<p class="error" role="alert">Wrong password.</p>`)
		}
		w.raw(`<label>Password <input type="password" name="password" autocomplete="current-password" required></label>`)
		w.raw(`<button type="submit">Sign in</button></form>`)
	})
}

func adminDashboard(page folio.AdminPage) templ.Component {
	return component(func(w *writer) {
		w.raw(`<header><h1>Posts</h1>`)
		w.raw(`<form method="post" action="/admin/logout/">` + csrfField(page.CSRFToken) + `<button type="submit">Sign out</button></form>`)
		w.raw(`</header>`)
		if page.Message != "" {
			w.f(`<p class="message" role="status">%s</p>`, esc(page.Message))
		}

		w.raw(`<section id="editor">`)
		w.component(adminForm(folio.BlogPost{Published: true}, page.CSRFToken))
		w.raw(`</section>`)

		w.raw(`<table class="posts"><thead><tr><th>Title</th><th>Date</th><th>Tags</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range page.Posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			edit := "/admin/post/" + folio.PathEscape(p.Slug) + "/"
			w.raw(`<tr>`)
			w.f(`<td>%s</td><td>%s</td><td>%s</td><td>%s</td>`, esc(p.Title), esc(p.Date), esc(folio.JoinTags(p.Tags)), status)
			w.f(`<td><button hx-get="%s" hx-target="#editor">Edit</button> `, esc(edit))
			w.f(`<button hx-delete="%s" hx-headers='{"X-CSRF-Token": "%s"}' hx-target="body" hx-confirm="Delete this post?">Delete</button></td>`,
				esc(edit), esc(page.CSRFToken))
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table>`)

		if len(page.TopViews) > 0 {
			w.raw(`<section class="top-views"><h2>Most viewed</h2><ol>`)
			for _, v := range page.TopViews {
				w.f(`<li><a href="/blog/%s/">%s</a> <span>%s</span></li>`, esc(folio.PathEscape(v.Slug)), esc(v.Slug), viewsLabel(v.Count))
			}
			w.raw(`</ol></section>`)
		}
	})
}

func adminForm(post folio.BlogPost, csrfToken string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form class="post-form" method="post" action="/admin/save/">`)
		w.raw(csrfField(csrfToken))
		w.f(`<label>Title <input name="title" value="%s" required></label>`, esc(post.Title))
		w.f(`<label>Slug <input name="slug" value="%s" placeholder="derived from the title"></label>`, esc(post.Slug))
		w.f(`<label>Date <input name="date" value="%s" placeholder="YYYY-MM-DD"></label>`, esc(post.Date))
		w.f(`<label>Tags (one per line) <textarea name="tags" rows="3" placeholder="Go&#10;Web Dev">%s</textarea></label>`, esc(folio.TagLines(post.Tags)))
		w.f(`<label>Summary <textarea name="summary" rows="2">%s</textarea></label>`, esc(post.Summary))
		w.f(`<label>Content <textarea name="content" rows="20">%s</textarea></label>`, esc(post.Content))
		checked := ""
		if post.Published {
			checked = " checked"
		}
		w.f(`<label><input type="checkbox" name="published" value="1"%s> Published</label>`, checked)
		w.raw(`<button type="submit">Save</button></form>`)

		if post.Slug == "" {
			return
		}
		w.f(`<form class="cover-form" method="post" action="/admin/post/%s/cover/" enctype="multipart/form-data">`, esc(folio.PathEscape(post.Slug)))
		w.raw(csrfField(csrfToken))
		if post.Image != "" {
			w.f(`<img src="%s" alt="" width="200">`, esc(post.Image))
		}
		w.raw(`<label>Cover <input type="file" name="image" accept="image/png,image/jpeg,image/gif" required></label>`)
		w.raw(`<button type="submit">Upload cover</button></form>`)
	})
}
