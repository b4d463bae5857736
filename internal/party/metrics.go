package party

import "github.com/prometheus/client_golang/prometheus"

var (
	partyConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "watch_party_ws_connections",
			Help: "Current number of active websocket connections.",
		},
	)
	partyRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "watch_party_rooms",
			Help: "Current number of rooms in the registry.",
		},
	)
	partySyncEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watch_party_sync_events_total",
			Help: "Total playback sync events applied, by action.",
		},
		[]string{"action"},
	)
	partyMessagesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "watch_party_messages_delivered_total",
			Help: "Total websocket messages delivered to clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(partyConnections, partyRooms, partySyncEvents, partyMessagesDelivered)
}

func incConnections() {
	partyConnections.Inc()
}

func decConnections() {
	partyConnections.Dec()
}

func setRooms(count int) {
	partyRooms.Set(float64(count))
}

func incSync(action string) {
	partySyncEvents.WithLabelValues(action).Inc()
}

func addDelivered(count int) {
	partyMessagesDelivered.Add(float64(count))
}
