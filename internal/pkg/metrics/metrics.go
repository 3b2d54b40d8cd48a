// Package metrics collects and exposes Prometheus metrics for the game
// backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the handlers and the chat subsystem record
// events through.
type Recorder interface {
	RecordRegistration()
	RecordLogin()
	ConnectionOpened()
	ConnectionClosed()
	RecordChatMessage()
	RecordHistoryReplayed(count int)
}

// Collector implements Recorder on top of Prometheus metrics.
type Collector struct {
	registrations   prometheus.Counter
	logins          prometheus.Counter
	wsConnections   prometheus.Gauge
	chatMessages    prometheus.Counter
	historyReplayed prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jugclassic_registrations_total",
			Help: "Total number of accounts registered.",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jugclassic_logins_total",
			Help: "Total number of successful logins.",
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jugclassic_ws_connections",
			Help: "Number of currently open WebSocket connections.",
		}),
		chatMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jugclassic_chat_messages_total",
			Help: "Total number of chat messages accepted and broadcast.",
		}),
		historyReplayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jugclassic_history_messages_replayed_total",
			Help: "Total number of history messages replayed to joining sessions.",
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.wsConnections,
		c.chatMessages,
		c.historyReplayed,
	)

	return c
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

func (c *Collector) ConnectionOpened() {
	c.wsConnections.Inc()
}

func (c *Collector) ConnectionClosed() {
	c.wsConnections.Dec()
}

func (c *Collector) RecordChatMessage() {
	c.chatMessages.Inc()
}

func (c *Collector) RecordHistoryReplayed(count int) {
	c.historyReplayed.Add(float64(count))
}

// Handler returns the HTTP handler serving the scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
