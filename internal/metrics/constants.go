package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameGamesPlayed     = "games_played_total"
	MetricNameCurrencyWagered = "currency_wagered_total"
	MetricNameCurrencyPaidOut = "currency_paid_out_total"
	MetricNameCasesOpened     = "cases_opened_total"
	MetricNameBattlesCreated  = "battles_created_total"
	MetricNameBattlesFinished = "battles_finished_total"
	MetricNameItemsSold       = "items_sold_total"
	MetricNameStreamClients   = "stream_clients"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextGamesPlayed     = "Total number of finished games by game and outcome"
	HelpTextCurrencyWagered = "Total currency debited as bets, case prices and battle entries"
	HelpTextCurrencyPaidOut = "Total currency or item value returned to players"
	HelpTextCasesOpened     = "Total number of cases opened by drawn rarity"
	HelpTextBattlesCreated  = "Total number of battles opened in the lobby"
	HelpTextBattlesFinished = "Total number of resolved battles by mode"
	HelpTextItemsSold       = "Total number of inventory items sold back"
	HelpTextStreamClients   = "Current number of connected live stream clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelGame    = "game"
	LabelOutcome = "outcome"
	LabelRarity  = "rarity"
	LabelMode    = "mode"
)

// Label values
const (
	GameBlackjack = "blackjack"
	GameSlots     = "slots"
	GameCase      = "case"
	GameBattle    = "battle"

	ModeBot    = "bot"
	ModePlayer = "player"

	OutcomeWin       = "win"
	OutcomeLoss      = "loss"
	OutcomeQuickSell = "quick_sell"
	OutcomeKeep      = "keep"

	// Requests that never matched a route are grouped under one label
	UnmatchedPath = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
