package observability

// MetricPrefix namespaces every instrument
const MetricPrefix = "coinbot"

// Metric names
const (
	CommandsExecutedTotal    = MetricPrefix + ".commands.executed_total"
	CommandErrorsTotal       = MetricPrefix + ".commands.errors_total"
	CommandDuration          = MetricPrefix + ".commands.duration"
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"
	EventsPublishedTotal     = MetricPrefix + ".events.published_total"
	SnapshotSavesTotal       = MetricPrefix + ".snapshot.saves_total"
	SnapshotSaveDuration     = MetricPrefix + ".snapshot.save_duration"
)

// Label keys
const (
	LabelCommand   = "command"
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelBackend   = "backend"
	LabelStatus    = "status"
	LabelErrorType = "error_type"
)

// Error types
const (
	ErrorTypeUser   = "user"
	ErrorTypeSystem = "system"
	ErrorTypePanic  = "panic"
)

// Status values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
