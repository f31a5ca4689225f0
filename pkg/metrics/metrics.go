// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labchat_events_created_total",
		Help: "Number of calendar events created, recurring instances included.",
	})

	EventsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labchat_events_deleted_total",
		Help: "Number of calendar events deleted, series bulk-cancels included.",
	})

	SeriesExpansions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labchat_series_expansions_total",
		Help: "Number of recurring templates expanded into event series.",
	})

	LookupCacheRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labchat_lookup_cache_refreshes_total",
		Help: "Number of times the lookup cache was refreshed or invalidated.",
	})
)
