// Package scheduler runs the delayed promotional sends. It is a process-wide
// service with an explicit Start/Stop lifecycle: jobs live in memory until
// fired, dropped (misfire beyond grace) or the process exits.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/gateway"
	"github.com/lucaruboni/restaurant-advisor/internal/metrics"
	"github.com/lucaruboni/restaurant-advisor/internal/util"
	"go.uber.org/zap"
)

// Job is one scheduled message. Body is fully rendered at enqueue time, so a
// fired job never reads submission state.
type Job struct {
	ID        string
	TenantID  string
	Recipient string
	Body      string
	FireAt    time.Time
	Grace     time.Duration
}

type Scheduler struct {
	tick   time.Duration
	sender gateway.Sender

	mu   sync.Mutex
	jobs map[string]Job

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(tick time.Duration, sender gateway.Sender) *Scheduler {
	if tick <= 0 {
		tick = time.Second
	}
	return &Scheduler{
		tick:   tick,
		sender: sender,
		jobs:   make(map[string]Job),
	}
}

// Enqueue registers a job and returns its assigned id. The scheduler does not
// need to be running yet; jobs enqueued before Start fire on the first tick
// they are due.
func (s *Scheduler) Enqueue(j Job) string {
	j.ID = util.NewID()

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	metrics.CampaignJobsTotal.WithLabelValues("scheduled").Inc()
	return j.ID
}

// Pending reports how many jobs have not fired or been dropped yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Start launches the dispatch loop. Returns false if already running.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running.Store(true)

	go s.loop(ctx)

	return true
}

// Stop cancels the loop and waits for it to exit. Pending jobs stay in memory
// and are lost with the process; durability is out of scope here.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		return false
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.running.Store(false)

	zap.L().Info("campaign scheduler stopped")
	return true
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	zap.L().Info("campaign scheduler started", zap.Duration("tick", s.tick))

	s.dispatchDue(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.dispatchDue(ctx, now)
		}
	}
}

// dispatchDue removes every due job from the map and fires it in its own
// goroutine. A job later than FireAt+Grace is dropped without firing; one
// failed send never touches the others.
func (s *Scheduler) dispatchDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var due []Job
	for id, j := range s.jobs {
		if !now.Before(j.FireAt) {
			due = append(due, j)
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, j := range due {
		if now.After(j.FireAt.Add(j.Grace)) {
			metrics.CampaignJobsTotal.WithLabelValues("dropped").Inc()
			zap.L().Warn("dropping misfired job past grace window",
				zap.String("job_id", j.ID),
				zap.String("tenant_id", j.TenantID),
				zap.Time("fire_at", j.FireAt),
			)
			continue
		}
		go s.fire(ctx, j)
	}
}

func (s *Scheduler) fire(ctx context.Context, j Job) {
	if err := s.sender.Send(ctx, j.Recipient, j.Body); err != nil {
		metrics.CampaignJobsTotal.WithLabelValues("fired").Inc()
		metrics.MessagesTotal.WithLabelValues("promo", "failed").Inc()
		zap.L().Error("failed to send scheduled message",
			zap.String("job_id", j.ID),
			zap.String("tenant_id", j.TenantID),
			zap.String("recipient", j.Recipient),
			zap.Error(err),
		)
		return
	}

	metrics.CampaignJobsTotal.WithLabelValues("fired").Inc()
	metrics.MessagesTotal.WithLabelValues("promo", "sent").Inc()
}
