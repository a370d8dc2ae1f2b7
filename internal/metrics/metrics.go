package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famchat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Gateway metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "famchat_active_sessions",
			Help: "Websocket sessions currently connected",
		},
	)

	SubscribedRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "famchat_subscribed_rooms",
			Help: "Rooms with at least one subscribed session",
		},
	)

	InboundEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famchat_inbound_events_total",
			Help: "Inbound websocket events by kind and outcome",
		},
		[]string{"event", "outcome"}, // outcome: ok, rejected, error, rate_limited
	)

	// Fan-out metrics
	Broadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famchat_broadcasts_total",
			Help: "Outbound events fanned out to a room",
		},
		[]string{"event"},
	)

	DeliveriesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famchat_deliveries_dropped_total",
			Help: "Deliveries skipped because the session was closed or too slow",
		},
		[]string{"reason"},
	)

	// Infrastructure metrics
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "famchat_store_latency_seconds",
			Help:    "Message store operation latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"op"},
	)

	EventsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famchat_events_exported_total",
			Help: "Chat events handed to export observers",
		},
		[]string{"type"},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "famchat_events_dropped_total",
			Help: "Chat events dropped because the export queue was full",
		},
	)
)
