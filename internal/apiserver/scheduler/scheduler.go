package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a housekeeping job run on a fixed interval
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// TaskStatus is the last known state of a task
type TaskStatus struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval"`
	Runs      int64         `json:"runs"`
	Failures  int64         `json:"failures"`
	LastRun   *time.Time    `json:"last_run,omitempty"`
	LastError string        `json:"last_error,omitempty"`
}

type state struct {
	task   Task
	status TaskStatus
}

// Scheduler runs each task in its own goroutine until stopped
type Scheduler struct {
	logger *zap.Logger

	mu      sync.RWMutex
	tasks   map[string]*state
	order   []string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.Named("apiserver.scheduler"),
		tasks:  make(map[string]*state),
	}
}

// Add registers a task. Tasks cannot be added once the scheduler runs.
func (s *Scheduler) Add(t Task) error {
	if t.Name == "" || t.Run == nil {
		return errors.New("task needs a name and a run function")
	}
	if t.Interval <= 0 {
		return errors.New("task interval must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("scheduler is already running")
	}
	if _, ok := s.tasks[t.Name]; ok {
		return errors.New("task already registered: " + t.Name)
	}
	s.tasks[t.Name] = &state{task: t, status: TaskStatus{Name: t.Name, Interval: t.Interval}}
	s.order = append(s.order, t.Name)
	return nil
}

// Start launches every registered task. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("scheduler is already running")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.logger.Info("starting scheduler", zap.Int("tasks", len(s.tasks)))
	for _, name := range s.order {
		st := s.tasks[name]
		s.wg.Add(1)
		go s.loop(ctx, st)
	}
	return nil
}

// Stop cancels all tasks and waits for running ones to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// Status returns a snapshot of every task in registration order
func (s *Scheduler) Status() []TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TaskStatus, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.tasks[name].status)
	}
	return out
}

func (s *Scheduler) loop(ctx context.Context, st *state) {
	defer s.wg.Done()
	ticker := time.NewTicker(st.task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, st)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, st *state) {
	start := time.Now()
	err := st.task.Run(ctx)

	s.mu.Lock()
	st.status.Runs++
	st.status.LastRun = &start
	st.status.LastError = ""
	if err != nil {
		st.status.Failures++
		st.status.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("task failed", zap.String("task", st.task.Name), zap.Error(err))
		return
	}
	s.logger.Debug("task finished",
		zap.String("task", st.task.Name),
		zap.Duration("duration", time.Since(start)))
}
