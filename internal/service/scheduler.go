package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/auction-house/internal/utils"
)

// Sweeper is the part of the engine driven by the Scheduler.
type Sweeper interface {
	ActivatePending(ctx context.Context) (int, error)
	CloseExpired(ctx context.Context) (int, error)
	WarnEndingSoon(ctx context.Context, within time.Duration) (int, error)
}

// ScheduleConfig sets the sweep cadence.
type ScheduleConfig struct {
	CloseEvery      time.Duration
	EndingSoonEvery time.Duration
	EndingSoonIn    time.Duration
}

// Scheduler runs the lifecycle sweeps on their own tickers.  The close
// sweep (activation then settlement) and the ending-soon sweep never share
// a goroutine or a transaction.  A failed tick is logged and retried on
// the next one.
type Scheduler struct {
	sweeper Sweeper
	cfg     ScheduleConfig

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(sweeper Sweeper, cfg ScheduleConfig) *Scheduler {
	return &Scheduler{sweeper: sweeper, cfg: cfg}
}

// Start launches both sweeps.  They stop when ctx is cancelled or Stop is
// called.  Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(2)
	go s.loop(ctx, "close", s.cfg.CloseEvery, s.closeTick)
	go s.loop(ctx, "ending_soon", s.cfg.EndingSoonEvery, s.endingSoonTick)
	utils.Info("scheduler started", map[string]any{
		"close_every": s.cfg.CloseEvery.String(), "ending_soon_every": s.cfg.EndingSoonEvery.String(),
	})
}

// Stop cancels both sweeps and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	utils.Info("scheduler stopped", nil)
}

func (s *Scheduler) loop(ctx context.Context, name string, every time.Duration, tick func(context.Context)) {
	defer s.wg.Done()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			utils.Debug("sweep tick", map[string]any{"sweep": name})
			tick(ctx)
		}
	}
}

func (s *Scheduler) closeTick(ctx context.Context) {
	if _, err := s.sweeper.ActivatePending(ctx); err != nil {
		utils.Error("activation sweep failed", map[string]any{"error": err.Error()})
	}
	if _, err := s.sweeper.CloseExpired(ctx); err != nil {
		utils.Error("close sweep failed", map[string]any{"error": err.Error()})
	}
}

func (s *Scheduler) endingSoonTick(ctx context.Context) {
	if _, err := s.sweeper.WarnEndingSoon(ctx, s.cfg.EndingSoonIn); err != nil {
		utils.Error("ending-soon sweep failed", map[string]any{"error": err.Error()})
	}
}
