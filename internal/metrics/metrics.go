package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Auth flow metrics

	SignupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unighana",
		Name:      "signups_total",
		Help:      "Total signup attempts, by outcome.",
	}, []string{"outcome"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unighana",
		Name:      "logins_total",
		Help:      "Total login attempts, by path and outcome.",
	}, []string{"path", "outcome"})

	VerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unighana",
		Name:      "email_verifications_total",
		Help:      "Total verification-code redemptions, by outcome.",
	}, []string{"outcome"})

	// Scraper metrics

	ScrapeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unighana",
		Name:      "admission_scrape_duration_seconds",
		Help:      "Duration of admissions-page scrapes.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unighana",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unighana",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		SignupsTotal,
		LoginsTotal,
		VerificationsTotal,
		ScrapeDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
