package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "movie_kombat"

type Metrics struct {
	registry *prometheus.Registry

	TournamentsStarted   prometheus.Counter
	TournamentsCompleted prometheus.Counter
	Choices              prometheus.Counter
	AutoByes             prometheus.Counter
	MovieLookups         *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		TournamentsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_started_total",
			Help:      "Tournaments started from a candidate list.",
		}),
		TournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_completed_total",
			Help:      "Tournaments that produced a champion.",
		}),
		Choices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "choices_total",
			Help:      "Match winners chosen by users.",
		}),
		AutoByes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_byes_total",
			Help:      "Byes resolved without a user choice.",
		}),
		MovieLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movie_lookups_total",
			Help:      "Requests to the movie metadata source.",
		}, []string{"operation", "outcome"}),
	}

	registry.MustRegister(
		m.TournamentsStarted,
		m.TournamentsCompleted,
		m.Choices,
		m.AutoByes,
		m.MovieLookups,
	)
	return m
}

func (m *Metrics) ObserveLookup(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.MovieLookups.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
