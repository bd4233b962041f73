package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// ExpiredSessionStore is the slice of the session repository the sweeper
// needs.
type ExpiredSessionStore interface {
	DeleteExpired() (int64, error)
}

// SessionSweeper is the explicitly owned background task that removes
// expired admin sessions. Started once at the process boundary, stopped
// on shutdown; no module-load side effects.
type SessionSweeper interface {
	Start(ctx context.Context)
	Stop()
}

type sessionSweeper struct {
	sessions ExpiredSessionStore
	interval time.Duration
	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewSessionSweeper(sessions ExpiredSessionStore, interval time.Duration) SessionSweeper {
	return &sessionSweeper{
		sessions: sessions,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start implements SessionSweeper.
func (s *sessionSweeper) Start(ctx context.Context) {
	log.Printf("🚀 Starting session sweeper (interval: %s)\n", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop implements SessionSweeper.
func (s *sessionSweeper) Stop() {
	log.Println("🛑 Stopping session sweeper...")
	close(s.stopChan)
	s.wg.Wait()
	log.Println("✅ Session sweeper stopped")
}

func (s *sessionSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.sessions.DeleteExpired()
			if err != nil {
				log.Printf("⚠️  Session sweep failed: %v\n", err)
				continue
			}
			if removed > 0 {
				log.Printf("🧹 Swept %d expired admin sessions\n", removed)
			}
		}
	}
}
