// Package scheduler reruns the analysis pipeline on a fixed cadence while
// the APIs are being served.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is one full refresh. It must be safe to call again after a failure.
type Task func(ctx context.Context) error

// Config holds scheduler configuration
type Config struct {
	RefreshInterval      time.Duration
	MaxRetries           int
	RetryDelay           time.Duration
	MaxConsecutiveErrors int
	Backoff              time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		RefreshInterval:      15 * time.Minute,
		MaxRetries:           3,
		RetryDelay:           5 * time.Second,
		MaxConsecutiveErrors: 5,
		Backoff:              5 * time.Minute,
	}
}

// Status is a snapshot of the scheduler's history
type Status struct {
	Runs              int           `json:"runs"`
	Failures          int           `json:"failures"`
	ConsecutiveErrors int           `json:"consecutive_errors"`
	LastSuccess       time.Time     `json:"last_success,omitempty"`
	LastError         string        `json:"last_error,omitempty"`
	RefreshInterval   time.Duration `json:"refresh_interval"`
}

// Orchestrator runs a Task every RefreshInterval with retries
type Orchestrator struct {
	task   Task
	config Config
	logger zerolog.Logger

	mu     sync.Mutex
	status Status
}

// NewOrchestrator creates a scheduler for task. Zero config fields take
// their defaults.
func NewOrchestrator(task Task, config Config, logger zerolog.Logger) *Orchestrator {
	def := DefaultConfig()
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = def.RefreshInterval
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = def.MaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = def.RetryDelay
	}
	if config.MaxConsecutiveErrors <= 0 {
		config.MaxConsecutiveErrors = def.MaxConsecutiveErrors
	}
	if config.Backoff < 0 {
		config.Backoff = 0
	}

	return &Orchestrator{
		task:   task,
		config: config,
		logger: logger.With().Str("component", "scheduler").Logger(),
		status: Status{RefreshInterval: config.RefreshInterval},
	}
}

// Start blocks, running the task on every tick until ctx is done. The first
// run happens one interval after Start.
func (o *Orchestrator) Start(ctx context.Context) {
	o.logger.Info().Dur("interval", o.config.RefreshInterval).Msg("refresh scheduler started")

	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info().Msg("refresh scheduler stopped")
			return
		case <-ticker.C:
			if !o.RunOnce(ctx) && o.Status().ConsecutiveErrors >= o.config.MaxConsecutiveErrors {
				o.logger.Warn().Dur("backoff", o.config.Backoff).Msg("high error rate, slowing refresh")
				select {
				case <-ctx.Done():
					return
				case <-time.After(o.config.Backoff):
				}
			}
		}
	}
}

// RunOnce runs the task with retries and reports whether it succeeded
func (o *Orchestrator) RunOnce(ctx context.Context) bool {
	start := time.Now()

	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		if err = o.task(ctx); err == nil {
			break
		}

		o.logger.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_retries", o.config.MaxRetries).
			Msg("refresh attempt failed")

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				o.record(ctx.Err())
				return false
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	o.record(err)
	if err != nil {
		o.logger.Error().Err(err).Int("consecutive_errors", o.Status().ConsecutiveErrors).Msg("refresh failed")
		return false
	}

	o.logger.Info().Dur("took", time.Since(start).Round(time.Millisecond)).Msg("refresh complete")
	return true
}

func (o *Orchestrator) record(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.status.Runs++
	if err != nil {
		o.status.Failures++
		o.status.ConsecutiveErrors++
		o.status.LastError = err.Error()
		return
	}
	o.status.ConsecutiveErrors = 0
	o.status.LastError = ""
	o.status.LastSuccess = time.Now()
}

// Status returns current scheduler status
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}
