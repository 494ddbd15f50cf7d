// Package telemetry provides OpenTelemetry integration for database observability.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DBMonitorConfig holds configuration for MongoDB command monitoring.
type DBMonitorConfig struct {
	// Enabled controls whether command metrics collection is active.
	Enabled bool
	// SlowCommandThreshold defines the threshold for slow command detection (default: 200ms).
	SlowCommandThreshold time.Duration
	// LogStatements logs the full command document at debug level (dev only).
	LogStatements bool
}

// DefaultDBMonitorConfig returns default configuration for command monitoring.
func DefaultDBMonitorConfig() DBMonitorConfig {
	return DBMonitorConfig{
		Enabled:              true,
		SlowCommandThreshold: 200 * time.Millisecond,
		LogStatements:        false,
	}
}

// DBMetrics holds all database command metrics instruments.
type DBMetrics struct {
	commandTotal     *Counter   // db_command_total
	commandDuration  *Histogram // db_command_duration_seconds
	commandErrors    *Counter   // db_command_errors_total
	slowCommandTotal *Counter   // db_slow_command_total

	config DBMonitorConfig
	logger *zap.Logger
}

// NewDBMetrics creates a new DBMetrics instance with the given meter.
func NewDBMetrics(meter metric.Meter, cfg DBMonitorConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.SlowCommandThreshold == 0 {
		cfg.SlowCommandThreshold = 200 * time.Millisecond
	}

	commandTotal, err := NewCounter(
		meter,
		"db_command_total",
		"Total number of database commands by operation type",
		"{command}",
	)
	if err != nil {
		return nil, err
	}

	commandDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_command_duration_seconds",
		Description: "Database command latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets, // [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	})
	if err != nil {
		return nil, err
	}

	commandErrors, err := NewCounter(
		meter,
		"db_command_errors_total",
		"Total number of failed database commands",
		"{command}",
	)
	if err != nil {
		return nil, err
	}

	slowCommandTotal, err := NewCounter(
		meter,
		"db_slow_command_total",
		"Total number of slow database commands (>200ms by default)",
		"{command}",
	)
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		commandTotal:     commandTotal,
		commandDuration:  commandDuration,
		commandErrors:    commandErrors,
		slowCommandTotal: slowCommandTotal,
		config:           cfg,
		logger:           logger,
	}, nil
}

// RecordCommand records metrics for a completed database command.
func (m *DBMetrics) RecordCommand(ctx context.Context, commandName, collection string, duration time.Duration, failed bool) {
	if commandName == "" {
		commandName = "unknown"
	}

	m.commandTotal.Inc(ctx, AttrDBOperation.String(commandName))
	m.commandDuration.RecordDuration(ctx, duration, AttrDBOperation.String(commandName))

	if failed {
		m.commandErrors.Inc(ctx, AttrDBOperation.String(commandName))
	}

	if duration > m.config.SlowCommandThreshold {
		if collection == "" {
			collection = "unknown"
		}
		m.slowCommandTotal.Inc(ctx,
			AttrDBOperation.String(commandName),
			AttrDBCollection.String(collection),
		)
		m.logger.Warn("Slow database command",
			zap.String("command", commandName),
			zap.String("collection", collection),
			zap.Duration("duration", duration),
			zap.Duration("threshold", m.config.SlowCommandThreshold),
		)
	}
}

// commandInfo tracks an in-flight command between Started and Succeeded/Failed.
type commandInfo struct {
	name       string
	collection string
}

// CommandMonitor observes MongoDB commands and records metrics for each one.
// It can chain to another monitor (typically otelmongo's tracing monitor) so
// both metrics and spans are produced from a single client option.
type CommandMonitor struct {
	metrics *DBMetrics
	logger  *zap.Logger
	next    *event.CommandMonitor

	mu       sync.Mutex
	inFlight map[int64]commandInfo
}

// NewCommandMonitor creates an event.CommandMonitor that records command
// metrics and forwards every event to next when it is non-nil.
func NewCommandMonitor(metrics *DBMetrics, logger *zap.Logger, next *event.CommandMonitor) *event.CommandMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CommandMonitor{
		metrics:  metrics,
		logger:   logger,
		next:     next,
		inFlight: make(map[int64]commandInfo),
	}

	return &event.CommandMonitor{
		Started:   cm.started,
		Succeeded: cm.succeeded,
		Failed:    cm.failed,
	}
}

func (cm *CommandMonitor) started(ctx context.Context, evt *event.CommandStartedEvent) {
	// The value under the command name key is the target collection for
	// CRUD commands (find, insert, update, delete, aggregate).
	collection, _ := evt.Command.Lookup(evt.CommandName).StringValueOK()

	cm.mu.Lock()
	cm.inFlight[evt.RequestID] = commandInfo{
		name:       evt.CommandName,
		collection: collection,
	}
	cm.mu.Unlock()

	if cm.metrics != nil && cm.metrics.config.LogStatements {
		cm.logger.Debug("Database command started",
			zap.String("command", evt.CommandName),
			zap.String("database", evt.DatabaseName),
			zap.String("statement", evt.Command.String()),
		)
	}

	if cm.next != nil && cm.next.Started != nil {
		cm.next.Started(ctx, evt)
	}
}

func (cm *CommandMonitor) succeeded(ctx context.Context, evt *event.CommandSucceededEvent) {
	cm.finish(ctx, evt.RequestID, evt.CommandName, evt.Duration, false)

	if cm.next != nil && cm.next.Succeeded != nil {
		cm.next.Succeeded(ctx, evt)
	}
}

func (cm *CommandMonitor) failed(ctx context.Context, evt *event.CommandFailedEvent) {
	cm.finish(ctx, evt.RequestID, evt.CommandName, evt.Duration, true)

	if cm.next != nil && cm.next.Failed != nil {
		cm.next.Failed(ctx, evt)
	}
}

func (cm *CommandMonitor) finish(ctx context.Context, requestID int64, commandName string, duration time.Duration, failed bool) {
	cm.mu.Lock()
	info, ok := cm.inFlight[requestID]
	if ok {
		delete(cm.inFlight, requestID)
	}
	cm.mu.Unlock()

	if cm.metrics == nil {
		return
	}

	collection := ""
	if ok {
		collection = info.collection
	}

	cm.metrics.RecordCommand(ctx, commandName, collection, duration, failed)
}
