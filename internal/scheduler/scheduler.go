package scheduler

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Job is a named run-to-completion task driven on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	running atomic.Bool
}

// Scheduler drives independent jobs on their own tickers. Each job holds a
// run lock: a tick that fires while the previous run is still in flight is
// skipped, not queued, so slow I/O can never stack runs of the same job.
type Scheduler struct {
	jobs   []*Job
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &Job{Name: name, Interval: interval, Run: run})
}

// Start launches one goroutine per job. Every job runs once immediately,
// then on its interval, until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	// fresh channel each start so the scheduler can be restarted after Stop
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	jobs := s.jobs
	s.mu.Unlock()

	for _, j := range jobs {
		s.wg.Add(1)
		go s.loop(ctx, j, stopCh)
	}
}

// Stop halts all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stopCh := s.stopCh
	s.mu.Unlock()

	close(stopCh)
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, j *Job, stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	s.runOnce(ctx, j)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Run off the loop goroutine so a slow run cannot delay tick
			// delivery; the job's run lock drops overlapping ticks instead.
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.runOnce(ctx, j)
			}()
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, j *Job) {
	if !j.running.CompareAndSwap(false, true) {
		log.Printf("scheduler: %s still running, skipping tick", j.Name)
		return
	}
	defer j.running.Store(false)

	if err := j.Run(ctx); err != nil {
		log.Printf("scheduler: %s: %v", j.Name, err)
	}
}
