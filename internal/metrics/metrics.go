package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	GamesPlayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGamesPlayed,
			Help: HelpTextGamesPlayed,
		},
		[]string{LabelGame, LabelOutcome},
	)

	CurrencyWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCurrencyWagered,
			Help: HelpTextCurrencyWagered,
		},
		[]string{LabelGame},
	)

	CurrencyPaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCurrencyPaidOut,
			Help: HelpTextCurrencyPaidOut,
		},
		[]string{LabelGame},
	)

	CasesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCasesOpened,
			Help: HelpTextCasesOpened,
		},
		[]string{LabelRarity},
	)

	BattlesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBattlesCreated,
			Help: HelpTextBattlesCreated,
		},
	)

	BattlesFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesFinished,
			Help: HelpTextBattlesFinished,
		},
		[]string{LabelMode},
	)

	ItemsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
	)

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStreamClients,
			Help: HelpTextStreamClients,
		},
	)
)
