// Package scheduler runs the periodic content-freshness check while the
// admin API is serving.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/atelierdv/portfolio-migrator/internal/deploy"
)

// FreshnessScheduler periodically compares the freshness ledger's timestamps
// and logs when content changes are waiting for a deploy.
type FreshnessScheduler struct {
	deploys  *deploy.Service
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewFreshnessScheduler(deploys *deploy.Service, schedule string) *FreshnessScheduler {
	return &FreshnessScheduler{
		deploys:  deploys,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. An empty schedule disables it.
func (s *FreshnessScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Freshness check: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCheck()
	})
	if err != nil {
		return fmt.Errorf("invalid freshness check schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Freshness check: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *FreshnessScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Freshness check: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *FreshnessScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next check will occur.
func (s *FreshnessScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow triggers an immediate check.
func (s *FreshnessScheduler) RunNow() {
	go s.runCheck()
}

func (s *FreshnessScheduler) runCheck() {
	pending, err := s.deploys.HasPendingChanges()
	if err != nil {
		log.Printf("Freshness check: failed to read ledger: %v", err)
		return
	}

	if !pending {
		log.Printf("Freshness check: site is up to date")
		return
	}

	modified, _ := s.deploys.LastContentModifiedAt()
	deployed, _ := s.deploys.LastDeployedAt()
	if deployed == "" {
		deployed = "never"
	}
	log.Printf("Freshness check: content modified at %s has not been deployed (last deploy: %s)", modified, deployed)
}
