// Domain-level Prometheus collectors.
//
// HTTP traffic metrics live in the middleware package; the counters here track
// product outcomes (swipes, matches, messages) that dashboards and alerts care
// about independently of request/response plumbing.
package handlers

import "github.com/prometheus/client_golang/prometheus"

var (
	// swipesTotal counts recorded swipe decisions by direction ("like"/"pass").
	swipesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swipes_total",
			Help: "Total number of recorded swipe decisions.",
		},
		[]string{"direction"},
	)

	// matchesTotal counts completed mutual matches.
	matchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_created_total",
			Help: "Total number of mutual matches created.",
		},
	)

	// messagesTotal counts chat messages accepted for delivery.
	messagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages sent.",
		},
	)

	// wsConnections gauges currently open realtime conversation feeds.
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_conversation_connections",
			Help: "Currently open realtime conversation connections.",
		},
	)
)

func init() {
	prometheus.MustRegister(swipesTotal, matchesTotal, messagesTotal, wsConnections)
}
