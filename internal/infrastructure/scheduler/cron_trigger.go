package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// CloseDayHour and CloseDayMinute define when the nightly day-close
	// pass runs (24h clock)
	CloseDayHour   int
	CloseDayMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		CloseDayHour:   0,
		CloseDayMinute: 30,
		CheckInterval:  time.Minute,
	}
}

// CronTriggerConfigFromSpec builds a trigger configuration from a
// "minute hour * * *" cron expression
func CronTriggerConfigFromSpec(spec string) (CronTriggerConfig, error) {
	cfg := DefaultCronTriggerConfig()
	hour, minute, err := ParseCronSchedule(spec)
	if err != nil {
		return cfg, err
	}
	cfg.CloseDayHour = hour
	cfg.CloseDayMinute = minute
	return cfg, nil
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract
// hour and minute. Returns the defaults (00:30) when the expression is
// empty or fields are wildcards.
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 0
	minute = 30

	if cronExpr == "" {
		return hour, minute, nil
	}

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := parseIntOrDefault(parts[0], 30); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := parseIntOrDefault(parts[1], 0); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 0, 30, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 0, 30, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

// parseIntOrDefault parses an int string or returns default
func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" || s == "*" {
		return defaultVal, nil
	}
	var val int
	for _, c := range s {
		if c < '0' || c > '9' {
			return defaultVal, ErrInvalidConfig
		}
		val = val*10 + int(c-'0')
	}
	return val, nil
}

// CronTrigger submits the nightly day-close job at the configured time
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Track which date we last ran for
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *CronTrigger {
	return &CronTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Int("close_day_hour", c.config.CloseDayHour),
		zap.Int("close_day_minute", c.config.CloseDayMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop checks periodically if it's time to run the day-close pass
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger()
		}
	}
}

// checkAndTrigger submits the day-close job when the clock matches
func (c *CronTrigger) checkAndTrigger() {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	// Skip if we already ran today
	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if now.Hour() != c.config.CloseDayHour || now.Minute() != c.config.CloseDayMinute {
		return
	}

	c.mu.Lock()
	c.lastRunDate = currentDate
	c.mu.Unlock()

	// Close out the previous day
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	c.logger.Info("Triggering attendance day close", zap.String("date", yesterday))
	if err := c.scheduler.ScheduleCloseDay(yesterday); err != nil {
		c.logger.Error("Failed to schedule day-close job",
			zap.String("date", yesterday),
			zap.Error(err),
		)
	}
}

// TriggerManual submits a day-close job for a specific date outside the
// nightly schedule
func (c *CronTrigger) TriggerManual(date string) error {
	return c.scheduler.ScheduleCloseDay(date)
}
