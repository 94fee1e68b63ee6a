package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/monitoring"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

// Simulator owns every delayed step of the demo: wallet connects and
// purchase resolutions. Tasks are keyed, so at most one task per key is
// registered at a time, and owned, so all tasks of a session can be
// cancelled together.
type Simulator interface {
	Start(ctx context.Context) error
	Stop() error
	Schedule(t Task) error
	Cancel(key string) bool
	CancelOwner(owner string) int
	Pending(key string) bool
	GetStatus() SimulatorStatus
}

type Task struct {
	Key   string
	Owner string
	Delay time.Duration
	// Run is called once the delay has elapsed. Its context is cancelled if
	// the task is cancelled while running.
	Run func(ctx context.Context)
	// OnCancel, if set, is called in its own goroutine when the task is
	// cancelled before Run started.
	OnCancel func(ctx context.Context)
}

type SimulatorConfig struct {
	ReportInterval  time.Duration // How often to export the task gauge
	ShutdownTimeout time.Duration // Max time to wait for running tasks on Stop
}

type scheduledTask struct {
	Task
	timer  *time.Timer
	ctx    context.Context
	cancel context.CancelFunc
	fired  bool
}

type simulator struct {
	l      logger.Logger
	config SimulatorConfig

	// State management
	mu         sync.Mutex
	isRunning  bool
	startedAt  time.Time
	rootCtx    context.Context
	rootCancel context.CancelFunc
	stopCh     chan struct{}
	tasks      map[string]*scheduledTask
	wg         sync.WaitGroup

	// Metrics
	totalScheduled int64
	totalFired     int64
	totalCancelled int64
}

func NewSimulator(l logger.Logger, cfg SimulatorConfig) Simulator {
	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = 5 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return &simulator{
		l:      l,
		config: cfg,
		tasks:  make(map[string]*scheduledTask),
	}
}

func (s *simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return errors.New("simulator is already running")
	}

	s.isRunning = true
	s.startedAt = time.Now()
	s.stopCh = make(chan struct{})
	s.rootCtx, s.rootCancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.reportLoop(s.rootCtx, s.stopCh)

	s.l.Infof(ctx, "Simulator started, report_interval: %s", s.config.ReportInterval)
	return nil
}

func (s *simulator) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSimulatorNotRunning
	}

	s.l.Info(context.Background(), "Stopping simulator...")

	close(s.stopCh)
	for _, t := range s.tasks {
		s.cancelLocked(t)
	}
	s.isRunning = false
	s.mu.Unlock()

	// Wait for graceful shutdown with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.l.Info(context.Background(), "Simulator stopped gracefully")
	case <-time.After(s.config.ShutdownTimeout):
		s.l.Warn(context.Background(), "Simulator shutdown timeout exceeded")
	}

	s.rootCancel()
	monitoring.SetSimulatorTasks(0)
	return nil
}

func (s *simulator) Schedule(t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return ErrSimulatorNotRunning
	}

	if _, ok := s.tasks[t.Key]; ok {
		return ErrTaskExists
	}

	ctx, cancel := context.WithCancel(s.rootCtx)
	st := &scheduledTask{
		Task:   t,
		ctx:    ctx,
		cancel: cancel,
	}
	st.timer = time.AfterFunc(t.Delay, func() { s.fire(st) })

	s.tasks[t.Key] = st
	s.totalScheduled++

	return nil
}

func (s *simulator) fire(st *scheduledTask) {
	s.mu.Lock()
	if !s.isRunning || s.tasks[st.Key] != st || st.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	st.fired = true
	s.totalFired++
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if s.tasks[st.Key] == st {
			delete(s.tasks, st.Key)
		}
		s.mu.Unlock()
		st.cancel()
	}()

	st.Run(st.ctx)
}

func (s *simulator) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return false
	}

	s.cancelLocked(t)
	return true
}

func (s *simulator) CancelOwner(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if t.Owner == owner {
			s.cancelLocked(t)
			n++
		}
	}

	return n
}

// cancelLocked must be called with s.mu held.
func (s *simulator) cancelLocked(t *scheduledTask) {
	t.timer.Stop()
	t.cancel()
	delete(s.tasks, t.Key)
	s.totalCancelled++

	if t.fired || t.OnCancel == nil {
		return
	}

	ctx := context.WithoutCancel(t.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t.OnCancel(ctx)
	}()
}

func (s *simulator) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.tasks[key]
	return ok
}

func (s *simulator) reportLoop(ctx context.Context, stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			n := len(s.tasks)
			s.mu.Unlock()

			monitoring.SetSimulatorTasks(n)
			if n > 0 {
				s.l.Debugf(ctx, "Simulator pending tasks: %d", n)
			}
		}
	}
}

func (s *simulator) GetStatus() SimulatorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SimulatorStatus{
		IsRunning:      s.isRunning,
		StartedAt:      s.startedAt,
		PendingTasks:   len(s.tasks),
		TotalScheduled: s.totalScheduled,
		TotalFired:     s.totalFired,
		TotalCancelled: s.totalCancelled,
	}
}
