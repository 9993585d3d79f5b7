package presence

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper runs the eviction pass on a fixed interval. Passes run sequentially
// off a single ticker goroutine: a pass that outlasts the interval makes the
// ticker drop ticks, so two passes never run concurrently.
type Sweeper struct {
	tracker  *Tracker
	interval time.Duration
	window   time.Duration
	timeout  time.Duration
	log      *logrus.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweeper builds a sweeper that evicts participants idle for longer than
// window, checking every interval. Each pass is bounded by timeout.
func NewSweeper(tracker *Tracker, interval, window, timeout time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		tracker:  tracker,
		interval: interval,
		window:   window,
		timeout:  timeout,
		log:      log,
	}
}

// Start launches the periodic loop in its own goroutine.
func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop halts the loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	s.log.WithFields(logrus.Fields{
		"interval": s.interval,
		"window":   s.window,
	}).Info("Presence sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Presence sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	if errs := s.tracker.Sweep(ctx, time.Now(), s.window); len(errs) > 0 {
		s.log.WithField("failures", len(errs)).Warn("Sweep finished with errors")
	}
}
