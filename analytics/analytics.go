// Package analytics counts article views, the numbers shown under each post.
package analytics

import "strings"

// PageViews is the view total of one article.
type PageViews struct {
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot",
	"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	"headlesschrome", "lighthouse",
}

// IsBot checks if the User-Agent is likely a bot or crawler. An empty
// User-Agent counts as a bot.
func IsBot(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}
