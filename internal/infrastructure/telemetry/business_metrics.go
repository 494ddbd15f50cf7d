// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the HRM system.
// It tracks attendance activity, leave requests, pricing quotes, and headcount.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	checkInTotal      *Counter
	checkOutTotal     *Counter
	leaveRequestTotal *Counter
	quoteTotal        *Counter

	// Gauge metrics (point-in-time values)
	employeeHeadcount *Gauge
	branchHeadcount   *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	workforceProvider WorkforceMetricsProvider
}

// WorkforceMetricsProvider provides headcount data for periodic metrics collection.
// This interface allows the telemetry layer to query employee state without
// depending on the workforce domain directly.
type WorkforceMetricsProvider interface {
	// HeadcountByStatus returns the number of employees per employment status
	HeadcountByStatus(ctx context.Context) (map[string]int64, error)

	// HeadcountByBranch returns the number of active employees per branch
	HeadcountByBranch(ctx context.Context) (map[uuid.UUID]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	WorkforceProvider WorkforceMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		workforceProvider: cfg.WorkforceProvider,
	}

	// Initialize counter metrics
	var err error

	// Attendance metrics
	bm.checkInTotal, err = NewCounter(
		cfg.Meter,
		"hrm_attendance_check_in_total",
		"Total number of attendance check-ins",
		"{check_ins}",
	)
	if err != nil {
		return nil, err
	}

	bm.checkOutTotal, err = NewCounter(
		cfg.Meter,
		"hrm_attendance_check_out_total",
		"Total number of attendance check-outs",
		"{check_outs}",
	)
	if err != nil {
		return nil, err
	}

	// Leave metrics
	bm.leaveRequestTotal, err = NewCounter(
		cfg.Meter,
		"hrm_leave_request_total",
		"Total number of leave request transitions",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	// Pricing metrics
	bm.quoteTotal, err = NewCounter(
		cfg.Meter,
		"hrm_pricing_quote_total",
		"Total number of delivery price quotes served",
		"{quotes}",
	)
	if err != nil {
		return nil, err
	}

	// Headcount gauge metrics
	bm.employeeHeadcount, err = NewGauge(
		cfg.Meter,
		"hrm_employee_headcount",
		"Current number of employees per employment status",
		"{employees}",
	)
	if err != nil {
		return nil, err
	}

	bm.branchHeadcount, err = NewGauge(
		cfg.Meter,
		"hrm_branch_headcount",
		"Current number of active employees per branch",
		"{employees}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Attendance Metrics
// =============================================================================

// CheckMethod represents how an attendance event was recorded, for metrics labeling.
type CheckMethod string

const (
	CheckMethodGPS    CheckMethod = "gps"
	CheckMethodManual CheckMethod = "manual"
	CheckMethodKiosk  CheckMethod = "kiosk"
)

// RecordCheckIn records an attendance check-in event.
// This should be called from the application layer when a check-in succeeds.
func (bm *BusinessMetrics) RecordCheckIn(ctx context.Context, branchID uuid.UUID, method CheckMethod) {
	bm.checkInTotal.Inc(ctx,
		AttrBranchID.String(branchID.String()),
		AttrCheckMethod.String(string(method)),
	)
}

// RecordCheckOut records an attendance check-out event.
func (bm *BusinessMetrics) RecordCheckOut(ctx context.Context, branchID uuid.UUID, method CheckMethod) {
	bm.checkOutTotal.Inc(ctx,
		AttrBranchID.String(branchID.String()),
		AttrCheckMethod.String(string(method)),
	)
}

// =============================================================================
// Leave Metrics
// =============================================================================

// RecordLeaveRequest records a leave request state transition.
// This should be called when a request is submitted, approved, rejected or cancelled.
func (bm *BusinessMetrics) RecordLeaveRequest(ctx context.Context, leaveType, status string) {
	bm.leaveRequestTotal.Inc(ctx,
		AttrLeaveType.String(leaveType),
		AttrLeaveStatus.String(status),
	)
}

// =============================================================================
// Pricing Metrics
// =============================================================================

// QuoteCacheResult represents whether a quote was served from cache, for metrics labeling.
type QuoteCacheResult string

const (
	QuoteCacheHit  QuoteCacheResult = "hit"
	QuoteCacheMiss QuoteCacheResult = "miss"
)

// RecordQuote records a delivery price quote.
// This should be called whenever a quote is computed or served from cache.
func (bm *BusinessMetrics) RecordQuote(ctx context.Context, serviceType string, cacheResult QuoteCacheResult) {
	bm.quoteTotal.Inc(ctx,
		AttrServiceType.String(serviceType),
		AttrCacheResult.String(string(cacheResult)),
	)
}

// =============================================================================
// Headcount Metrics
// =============================================================================

// RecordHeadcountByStatus records the current number of employees in a status.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordHeadcountByStatus(ctx context.Context, status string, count int64) {
	bm.employeeHeadcount.Record(ctx, count,
		AttrEmployeeStatus.String(status),
	)
}

// RecordHeadcountByBranch records the current number of active employees in a branch.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordHeadcountByBranch(ctx context.Context, branchID uuid.UUID, count int64) {
	bm.branchHeadcount.Record(ctx, count,
		AttrBranchID.String(branchID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects headcount metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectHeadcountMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectHeadcountMetrics(ctx)
		}
	}
}

// collectHeadcountMetrics collects headcount gauge metrics.
func (bm *BusinessMetrics) collectHeadcountMetrics(ctx context.Context) {
	if bm.workforceProvider == nil {
		bm.logger.Debug("No workforce provider configured, skipping headcount metrics collection")
		return
	}

	byStatus, err := bm.workforceProvider.HeadcountByStatus(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get headcount by status", zap.Error(err))
	} else {
		for status, count := range byStatus {
			bm.RecordHeadcountByStatus(ctx, status, count)
		}
	}

	byBranch, err := bm.workforceProvider.HeadcountByBranch(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get headcount by branch", zap.Error(err))
	} else {
		for branchID, count := range byBranch {
			bm.RecordHeadcountByBranch(ctx, branchID, count)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
