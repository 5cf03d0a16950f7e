package hub

import "github.com/prometheus/client_golang/prometheus"

var (
	// connectedClients gauges the number of live WebSocket connections.
	connectedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Current number of connected WebSocket clients.",
		},
	)

	// onlineUsers gauges the number of distinct users with at least one
	// connection. Always <= hub_connected_clients.
	onlineUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_online_users",
			Help: "Current number of distinct online users.",
		},
	)

	// pushesTotal counts frames enqueued for delivery, by message tag.
	pushesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_pushes_total",
			Help: "Total number of push frames enqueued for delivery.",
		},
		[]string{"tag"},
	)

	// sendFailures counts pushes that could not be enqueued (slow or gone
	// consumers). Failures are absorbed, never surfaced to business callers.
	sendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_send_failures_total",
			Help: "Total number of push frames dropped due to slow or closed connections.",
		},
	)
)

func init() {
	prometheus.MustRegister(connectedClients, onlineUsers, pushesTotal, sendFailures)
}
