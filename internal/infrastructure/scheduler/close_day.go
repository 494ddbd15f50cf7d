package scheduler

import (
	"context"

	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/application/timekeeping"
)

// CloseDayExecutor runs the attendance day-close pass for a job's date
type CloseDayExecutor struct {
	attendanceService *timekeeping.AttendanceService
	logger            *zap.Logger
}

// NewCloseDayExecutor creates a day-close executor
func NewCloseDayExecutor(attendanceService *timekeeping.AttendanceService, logger *zap.Logger) *CloseDayExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloseDayExecutor{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// Execute implements JobExecutor
func (e *CloseDayExecutor) Execute(ctx context.Context, job *Job) error {
	if job.Type != JobTypeCloseDay {
		return ErrInvalidJobType
	}

	result, err := e.attendanceService.CloseDay(ctx, timekeeping.CloseDayRequest{Date: job.Date})
	if err != nil {
		return err
	}

	e.logger.Info("Attendance day closed",
		zap.String("date", result.Date),
		zap.Int("missing_check_out", result.MissingCheckOut),
		zap.Int("absences", result.Absences),
	)
	return nil
}
