package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

// HousekeepingService periodically deletes expired password reset tokens.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh    chan struct{}
	doneCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	mu        sync.Mutex
	started   bool
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop() to shut it down. Only the
// first call has any effect.
func (s *HousekeepingService) Start() {
	s.startOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		select {
		case <-s.stopCh:
			// Stopped before it ever ran.
			return
		default:
		}
		s.started = true
		go s.run()
		s.Logger.Info("housekeeping service started", "interval", s.Interval)
	})
}

// Stop blocks until any in-progress sweep has finished. It is safe to call
// more than once and without a prior Start.
func (s *HousekeepingService) Stop() {
	s.mu.Lock()
	s.stopOnce.Do(func() { close(s.stopCh) })
	started := s.started
	s.mu.Unlock()

	if !started {
		return
	}
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes reset tokens past their expiry. A failure is logged and the
// next tick tries again.
func (s *HousekeepingService) sweep(ctx context.Context) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	n, err := s.Store.ResetTokens().DeleteExpiredResetTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired reset tokens", "error", err)
		return
	}
	s.Logger.Info("housekeeping cleanup completed", "expired_reset_tokens", n)
}
