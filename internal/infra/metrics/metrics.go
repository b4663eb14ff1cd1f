// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records the counters the service layer reports. Handlers and
// usecases depend on this concrete type; it is cheap to pass around and
// safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	authAttempts        *prometheus.CounterVec
	googleVerifications *prometheus.CounterVec
	recipesCreated      prometheus.Counter
	generationLatency   prometheus.Histogram
	shoppingListItems   prometheus.Histogram
}

// NewCollector creates a Collector with its own registry, pre-populated
// with the standard Go and process collectors.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collector{
		registry: registry,
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plateful_auth_attempts_total",
			Help: "Authentication attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		googleVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plateful_google_verifications_total",
			Help: "Google ID token verifications by outcome.",
		}, []string{"outcome"}),
		recipesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plateful_recipes_created_total",
			Help: "Recipes created, including accepted AI drafts.",
		}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plateful_recipe_generation_seconds",
			Help:    "Latency of AI recipe draft generation.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		}),
		shoppingListItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plateful_shopping_list_items",
			Help:    "Number of merged items per generated shopping list.",
			Buckets: []float64{5, 10, 20, 40, 80},
		}),
	}

	registry.MustRegister(
		c.authAttempts,
		c.googleVerifications,
		c.recipesCreated,
		c.generationLatency,
		c.shoppingListItems,
	)

	return c
}

// RecordAuthAttempt records a login or registration attempt.
// method is "password" or "google"; outcome is "success" or "failure".
func (c *Collector) RecordAuthAttempt(method, outcome string) {
	c.authAttempts.WithLabelValues(method, outcome).Inc()
}

// RecordGoogleVerification records a tokeninfo verification outcome.
func (c *Collector) RecordGoogleVerification(outcome string) {
	c.googleVerifications.WithLabelValues(outcome).Inc()
}

// RecordRecipeCreated records a persisted recipe.
func (c *Collector) RecordRecipeCreated() {
	c.recipesCreated.Inc()
}

// RecordGenerationLatency records the duration of an AI draft request.
func (c *Collector) RecordGenerationLatency(duration time.Duration) {
	c.generationLatency.Observe(duration.Seconds())
}

// RecordShoppingListSize records the merged item count of a shopping list.
func (c *Collector) RecordShoppingListSize(items int) {
	c.shoppingListItems.Observe(float64(items))
}

// Handler returns the scrape handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
