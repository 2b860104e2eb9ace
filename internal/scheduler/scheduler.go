// Package scheduler is the periodic driver of the reminder core: a plain
// interval timer that runs every scanner once per tick, with one immediate
// pass at startup.
package scheduler

import (
	"context"
	"time"

	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/common/metrics"
)

// Scanner is one scan pass over one record family.
type Scanner interface {
	Name() string
	Scan(ctx context.Context) error
}

// Pinger is how the state store reports reachability at construction time.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Scheduler struct {
	interval time.Duration
	scanners []Scanner
	logger   logger.Logger
	stopChan chan struct{}

	ready   bool
	pingErr error
}

// New probes the state store once; when it is unreachable the scheduler is
// built idle and Start will never arm the timer.
func New(interval time.Duration, st Pinger, scanners []Scanner, log logger.Logger) *Scheduler {
	s := &Scheduler{
		interval: interval,
		scanners: scanners,
		logger:   log.WithFields(map[string]interface{}{"component": "scheduler"}),
		stopChan: make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.Ping(ctx); err != nil {
		s.pingErr = err
		return s
	}
	s.ready = true
	return s
}

// Start blocks until ctx is cancelled or Stop is called. When the store was
// unavailable at construction it logs one notice and stays idle: no timer,
// no busy loop, no repeated error spam.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.ready {
		s.logger.Warn("state store unavailable, reminder scheduler staying idle", map[string]interface{}{
			"error": s.pingErr.Error(),
		})
		select {
		case <-ctx.Done():
		case <-s.stopChan:
		}
		return
	}

	s.logger.Info("reminder scheduler started", map[string]interface{}{
		"interval": s.interval.String(),
		"scanners": len(s.scanners),
	})

	// Immediate pass at startup; failures are logged, never propagated.
	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// runAll executes each scanner in turn. A failed pass of one scanner never
// prevents the others from running, and never stops future ticks.
func (s *Scheduler) runAll(ctx context.Context) {
	for _, sc := range s.scanners {
		start := time.Now()
		err := sc.Scan(ctx)
		metrics.ScanDuration.WithLabelValues(sc.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.ScanAborts.WithLabelValues(sc.Name()).Inc()
			s.logger.Error("scan pass failed", map[string]interface{}{
				"scanner": sc.Name(),
				"error":   err.Error(),
			})
		}
	}
}
