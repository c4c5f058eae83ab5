package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "padlink_ws_connections_active",
		Help: "Currently connected websocket clients.",
	})
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "padlink_rooms_active",
		Help: "Rooms with at least one member.",
	})
	JoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padlink_room_joins_total",
		Help: "join_room events accepted.",
	})
	CommandsRelayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padlink_commands_relayed_total",
		Help: "send_command events fanned out.",
	})
	DeliveriesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padlink_deliveries_dropped_total",
		Help: "Frames dropped because a member's send buffer was full.",
	})
	GenerateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padlink_generate_requests_total",
		Help: "Generation proxy requests by outcome.",
	}, []string{"status"})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
