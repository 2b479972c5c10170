// Package metrics defines the Prometheus collectors exposed on /metrics.
// Collectors register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pet_constitution"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (gin full path, "unmatched" for 404s), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Domain ────────────────────────────────────────────────────────────────────

// ResultsCreatedTotal counts stored questionnaire results.
// Label ownership: "owned" or "temporary".
var ResultsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_created_total",
		Help:      "Total number of questionnaire results stored.",
	},
	[]string{"ownership"},
)

// ConsultationsCreatedTotal counts booking requests.
var ConsultationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consultations_created_total",
		Help:      "Total number of consultation bookings created.",
	},
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// MealPlanEmailsTotal counts meal-plan dispatch attempts.
// Label outcome: "sent" or "failed".
var MealPlanEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meal_plan_emails_total",
		Help:      "Total number of meal-plan emails attempted, by outcome.",
	},
	[]string{"outcome"},
)
