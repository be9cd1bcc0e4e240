package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coinbot/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// MetricsProvider owns the OpenTelemetry meter and the bot's instruments.
// A nil or disabled provider ignores every Record call.
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	enabled       bool
	mu            sync.RWMutex

	commandsCounter       metric.Int64Counter
	commandErrorsCounter  metric.Int64Counter
	commandDurationHist   metric.Float64Histogram
	transactionsCounter   metric.Int64Counter
	eventsCounter         metric.Int64Counter
	snapshotSavesCounter  metric.Int64Counter
	snapshotDurationHist  metric.Float64Histogram
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{config: cfg}
}

// Initialize sets up the exporter selected by the config
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(dialCtx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)
	otel.SetMeterProvider(mp.meterProvider)

	if err := mp.createInstruments(mp.meterProvider.Meter("coinbot")); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.enabled = true
	log.Info("Metrics provider initialized")
	return nil
}

// InitializeWithReader wires the provider to a caller-supplied reader.
// Tests use it with a ManualReader.
func (mp *MetricsProvider) InitializeWithReader(reader sdkmetric.Reader) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	if err := mp.createInstruments(mp.meterProvider.Meter("coinbot")); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}
	mp.initialized = true
	mp.enabled = true
	return nil
}

func (mp *MetricsProvider) createInstruments(meter metric.Meter) error {
	var err error
	mp.meter = meter

	if mp.commandsCounter, err = meter.Int64Counter(
		CommandsExecutedTotal,
		metric.WithDescription("Total number of commands executed"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create commands counter: %w", err)
	}

	if mp.commandErrorsCounter, err = meter.Int64Counter(
		CommandErrorsTotal,
		metric.WithDescription("Total number of commands that failed"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create command errors counter: %w", err)
	}

	if mp.commandDurationHist, err = meter.Float64Histogram(
		CommandDuration,
		metric.WithDescription("Duration of command handlers in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	); err != nil {
		return fmt.Errorf("failed to create command duration histogram: %w", err)
	}

	if mp.transactionsCounter, err = meter.Int64Counter(
		BalanceTransactionsTotal,
		metric.WithDescription("Total number of balance transactions"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create balance transactions counter: %w", err)
	}

	if mp.eventsCounter, err = meter.Int64Counter(
		EventsPublishedTotal,
		metric.WithDescription("Total number of economy events published"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create events counter: %w", err)
	}

	if mp.snapshotSavesCounter, err = meter.Int64Counter(
		SnapshotSavesTotal,
		metric.WithDescription("Total number of snapshot saves"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create snapshot saves counter: %w", err)
	}

	if mp.snapshotDurationHist, err = meter.Float64Histogram(
		SnapshotSaveDuration,
		metric.WithDescription("Duration of snapshot saves in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	); err != nil {
		return fmt.Errorf("failed to create snapshot duration histogram: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp == nil {
		return nil
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.enabled = false
	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordCommand records one command execution
func (mp *MetricsProvider) RecordCommand(command string, duration time.Duration, errorType string) {
	if !mp.isEnabled() {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String(LabelCommand, command))
	mp.commandsCounter.Add(ctx, 1, attrs)
	mp.commandDurationHist.Record(ctx, duration.Seconds(), attrs)

	if errorType != "" {
		mp.commandErrorsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String(LabelCommand, command),
			attribute.String(LabelErrorType, errorType),
		))
	}
}

// RecordBalanceTransaction records a balance transaction
func (mp *MetricsProvider) RecordBalanceTransaction(transactionType string) {
	if !mp.isEnabled() {
		return
	}

	mp.transactionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelType, transactionType)),
	)
}

// RecordEventPublished records an economy event leaving the store
func (mp *MetricsProvider) RecordEventPublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.eventsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelEventType, eventType)),
	)
}

// RecordSnapshotSave records a snapshot flush and its outcome
func (mp *MetricsProvider) RecordSnapshotSave(backend string, duration time.Duration, err error) {
	if !mp.isEnabled() {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	attrs := metric.WithAttributes(
		attribute.String(LabelBackend, backend),
		attribute.String(LabelStatus, status),
	)

	ctx := context.Background()
	mp.snapshotSavesCounter.Add(ctx, 1, attrs)
	mp.snapshotDurationHist.Record(ctx, duration.Seconds(), attrs)
}

func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.enabled
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider, nil before initialization
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	return globalMetrics.Shutdown(ctx)
}
