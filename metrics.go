package folio

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the site's Prometheus collectors. A nil *Metrics records
// nothing, so callers never need to check whether metrics are enabled.
type Metrics struct {
	registry   *prometheus.Registry
	renders    *prometheus.CounterVec
	lookups    *prometheus.CounterVec
	views      prometheus.Counter
	indexBuild prometheus.Histogram
	reloads    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "page_renders_total",
			Help:      "Rendered pages by kind.",
		}, []string{"kind"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "category_lookups_total",
			Help:      "Category page requests by result.",
		}, []string{"result"}),
		views: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "article_views_total",
			Help:      "Counted article views.",
		}),
		indexBuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "folio",
			Name:      "category_index_build_seconds",
			Help:      "Time spent building the category index.",
			Buckets:   []float64{.00001, .0001, .001, .01, .1},
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "content_reloads_total",
			Help:      "Content directory imports by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.renders, m.lookups, m.views, m.indexBuild, m.reloads)
	return m
}

// PageRendered counts one rendered page of the given kind.
func (m *Metrics) PageRendered(kind string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(kind).Inc()
}

// CategoryLookup counts a category page request.
func (m *Metrics) CategoryLookup(found bool) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result(found, "hit", "miss")).Inc()
}

// ViewCounted counts one article view.
func (m *Metrics) ViewCounted() {
	if m == nil {
		return
	}
	m.views.Inc()
}

// ObserveIndexBuild records how long a category index build took.
func (m *Metrics) ObserveIndexBuild(d time.Duration) {
	if m == nil {
		return
	}
	m.indexBuild.Observe(d.Seconds())
}

// ContentReloaded counts a content import.
func (m *Metrics) ContentReloaded(ok bool) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result(ok, "ok", "error")).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
