package services

import (
	"fmt"
	"sync"
	"time"

	"picktime/internal/models"
	"picktime/internal/providers"
	"picktime/internal/shift"
)

type ShiftMonitorInterface interface {
	Tick() error
}

const (
	reasonEndWindow    = "end_window"
	reasonShiftChange  = "shift_change"
	reasonStaleSession = "stale_session"
)

// ShiftMonitor forces a cutover when a shift ends or its end window is entered.
type ShiftMonitor struct {
	mu      sync.Mutex
	ledger  LedgerServiceInterface
	session SessionServiceInterface
	policy  *shift.Policy
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

// Tick closes the running session when the shift label changed since the last
// tick, the clock is inside an end window, or the session was opened before the
// current shift began. lastKnownShift only advances outside the window so the
// boundary is seen again once the window is over.
func (sm *ShiftMonitor) Tick() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.policy.Now()
	nowShift := shift.Label(now)
	endWindow := shift.IsEndWindow(now)

	stored, err := sm.ledger.LastKnownShift()
	if err != nil {
		return err
	}
	lastShift, known := shift.NormalizeLabel(stored)

	active := sm.session.Active()
	stale := active != nil && active.Start().Before(shift.ShiftStart(now))

	if !endWindow && !stale && known && lastShift == nowShift {
		if stored != nowShift {
			return sm.ledger.SetLastKnownShift(nowShift)
		}
		return nil
	}

	closingShift, closingDay, reason := closingBucket(now, endWindow, active)
	if active != nil {
		sm.metrics.IncCutovers(reason)
		if reason == reasonStaleSession {
			sm.logger.Warnf(providers.TypeMonitor, "Session of %s opened %s spans more than one shift", active.StationID, active.Start().In(now.Location()).Format(time.DateTime))
		}
		sm.logger.Infof(providers.TypeMonitor, "Cutover (%s) of %s into %s/%s", reason, active.StationID, closingDay, closingShift)
	}
	if err := sm.session.ForceCutover(closingShift, closingDay); err != nil {
		return fmt.Errorf("cutover into %s/%s: %w", closingDay, closingShift, err)
	}

	if endWindow {
		return nil
	}
	if stored != nowShift {
		sm.logger.Infof(providers.TypeMonitor, "Shift is now %s (was %q)", nowShift, stored)
		return sm.ledger.SetLastKnownShift(nowShift)
	}
	return nil
}

// closingBucket picks the day and shift a cutover at now files the session under.
// A session opened in the current shift stays there. One opened in the shift just
// before it goes to that shift. Anything older, left over from a restart or a
// missed tick, goes back to the shift it was opened in so time never lands in a
// bucket that has not happened yet.
func closingBucket(now time.Time, endWindow bool, active *models.ActiveSession) (label, day, reason string) {
	label, day, reason = shift.Label(now), shift.DayKey(now), reasonShiftChange
	if endWindow {
		reason = reasonEndWindow
	}
	if active == nil {
		return label, day, reason
	}

	start := active.Start().In(now.Location())
	current := shift.ShiftStart(now)
	if !start.Before(current) {
		return label, day, reason
	}
	previous := current.Add(-time.Nanosecond)
	if !endWindow && !start.Before(shift.ShiftStart(previous)) {
		return shift.Label(previous), shift.DayKey(previous), reason
	}
	return shift.Label(start), shift.DayKey(start), reasonStaleSession
}

func NewShiftMonitor(ledger LedgerServiceInterface, session SessionServiceInterface, policy *shift.Policy, logger providers.Logger, metrics providers.MetricsProviderInterface) ShiftMonitorInterface {
	return &ShiftMonitor{
		ledger:  ledger,
		session: session,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
}
