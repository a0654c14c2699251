package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/ratelimit"
)

const maxSlugLen = 200

// Handler serves the view counter endpoints.
type Handler struct {
	store       *Store
	limiter     *ratelimit.Limiter
	exists      func(slug string) bool
	onIncrement func(slug string)
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithExists rejects slugs for which fn returns false with 404.
func WithExists(fn func(slug string) bool) HandlerOption {
	return func(h *Handler) { h.exists = fn }
}

// WithIncrementHook calls fn after each counted view.
func WithIncrementHook(fn func(slug string)) HandlerOption {
	return func(h *Handler) { h.onIncrement = fn }
}

// NewHandler creates a view counter handler. Counting is rate-limited to 60
// requests per IP per minute.
func NewHandler(store *Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:   store,
		limiter: ratelimit.New(60, time.Minute),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close releases the rate limiter.
func (h *Handler) Close() {
	h.limiter.Stop()
}

// RegisterRoutes mounts the endpoints on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/api/views/:slug", h.Views)
	g.POST("/api/views/:slug", h.Increment)
}

func (h *Handler) validSlug(slug string) (int, bool) {
	if slug == "" || len(slug) > maxSlugLen {
		return http.StatusBadRequest, false
	}
	if h.exists != nil && !h.exists(slug) {
		return http.StatusNotFound, false
	}
	return 0, true
}

// Views returns the current count for a slug.
func (h *Handler) Views(c echo.Context) error {
	slug := c.Param("slug")
	if code, ok := h.validSlug(slug); !ok {
		return c.JSON(code, map[string]string{"error": http.StatusText(code)})
	}
	count, err := h.store.Count(c.Request().Context(), slug)
	if err != nil {
		c.Logger().Errorf("Failed to read views: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, PageViews{Slug: slug, Count: count})
}

// Increment counts one view and returns the new total. Bots and clients
// sending DNT get the current total without being counted.
func (h *Handler) Increment(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}
	slug := c.Param("slug")
	if code, ok := h.validSlug(slug); !ok {
		return c.JSON(code, map[string]string{"error": http.StatusText(code)})
	}

	ctx := c.Request().Context()
	if c.Request().Header.Get("DNT") == "1" || IsBot(c.Request().UserAgent()) {
		return h.Views(c)
	}

	count, err := h.store.Increment(ctx, slug)
	if err != nil {
		c.Logger().Errorf("Failed to increment views: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if h.onIncrement != nil {
		h.onIncrement(slug)
	}
	return c.JSON(http.StatusOK, PageViews{Slug: slug, Count: count})
}
