package scheduler

import (
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"

	"picktime/internal/models"
	"picktime/internal/providers"
	"picktime/internal/scheduler/interfaces"
	"picktime/internal/services"
	"picktime/internal/structures"
)

// Scheduler drives the display heartbeat and the shift monitor.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	ledger  services.LedgerServiceInterface
	session services.SessionServiceInterface
	monitor services.ShiftMonitorInterface
	cron    gocron.Scheduler
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() error {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = cron.NewJob(
		gocron.DurationJob(s.config.Shift.DisplayInterval),
		gocron.NewTask(s.heartbeat),
		gocron.WithName("display-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = cron.Shutdown()
		return fmt.Errorf("failed to schedule display tick: %w", err)
	}

	_, err = cron.NewJob(
		gocron.DurationJob(s.config.Shift.MonitorInterval),
		gocron.NewTask(s.tick),
		gocron.WithName("shift-monitor"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = cron.Shutdown()
		return fmt.Errorf("failed to schedule shift monitor: %w", err)
	}

	s.cron = cron
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started: display every %s, shift check every %s",
		s.config.Shift.DisplayInterval, s.config.Shift.MonitorInterval)
	return nil
}

func (s *Scheduler) heartbeat() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.session.Heartbeat(); err != nil {
		s.logger.Errorf(providers.TypeSession, "Error while persisting active session: %s", err)
	}
}

func (s *Scheduler) tick() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.monitor.Tick(); err != nil {
		s.logger.Errorf(providers.TypeMonitor, "Shift check failed: %s", err)
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		if err := s.cron.Shutdown(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while stopping scheduler: %s", err)
		}
		s.cron = nil
	}
}

// Restore loads and migrates the ledger, restores the session and runs the
// first shift check before any job is scheduled.
func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.ledger.Load(); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	if err := s.session.Restore(); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if err := s.monitor.Tick(); err != nil {
		return fmt.Errorf("initial shift check: %w", err)
	}
	return nil
}

// Persist rewrites the ledger and the session keys, carrying any state a failed
// write left only in memory.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Flushing ledger...")
	err := s.ledger.Update(func(_ *models.Ledger) error { return nil })
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting ledger: %s", err)
		return err
	}
	return s.session.Heartbeat()
}

func NewScheduler(config *structures.Config, logger providers.Logger, ledger services.LedgerServiceInterface, session services.SessionServiceInterface, monitor services.ShiftMonitorInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		ledger:  ledger,
		session: session,
		monitor: monitor,
	}
}
