package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"picktime/internal/models"
	"picktime/internal/providers"
	"picktime/internal/shift"
	"picktime/internal/structures"
)

const (
	// BucketCutover files closing time under the day/shift current at close.
	BucketCutover = "cutover"
	// BucketOpened files closing time under the day/shift the session was opened in.
	BucketOpened = "opened"
)

type SessionServiceInterface interface {
	Restore() error
	Toggle(stationID string) error
	ElapsedDisplaySeconds(now time.Time) uint
	Heartbeat() error
	ForceCutover(asOfShift, asOfDay string) error
	Active() *models.ActiveSession
	Status() *models.Status
}

// SessionService is the Idle/Active state machine. All transitions hold mu.
type SessionService struct {
	mu      sync.Mutex
	ledger  LedgerServiceInterface
	catalog *models.Catalog
	policy  *shift.Policy
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	bucket  string
	active  *models.ActiveSession
}

// Restore rebuilds the Active state from storage and reconciles the ledger's
// active flags against it. Broken sessions are dropped with a warning.
func (ss *SessionService) Restore() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	sess, err := ss.ledger.LoadActiveSession()
	if err != nil {
		if !errors.Is(err, models.ErrMalformedPersistedData) {
			return err
		}
		ss.logger.Warnf(providers.TypeSession, "Discarding stored session: %s", err)
		sess = nil
		if err := ss.ledger.SaveActiveSession(nil); err != nil {
			return err
		}
	}
	if sess != nil {
		if _, ok := ss.catalog.Lookup(sess.StationID); !ok {
			ss.logger.Warnf(providers.TypeSession, "Discarding stored session of unknown station %q", sess.StationID)
			sess = nil
			if err := ss.ledger.SaveActiveSession(nil); err != nil {
				return err
			}
		}
	}

	loc := ss.policy.Now().Location()
	cleared := 0
	err = ss.ledger.Update(func(l *models.Ledger) error {
		if sess == nil {
			cleared = l.ClearAllActive(nil)
			return nil
		}
		start := sess.Start().In(loc)
		ref := models.RecordRef{Day: shift.DayKey(start), Shift: shift.Label(start), StationID: sess.StationID}
		l.Record(ref.Day, ref.Shift, ref.StationID).Active = true
		cleared = l.ClearAllActive(&ref)
		return nil
	})
	if err != nil {
		return err
	}
	if cleared > 0 {
		ss.logger.Warnf(providers.TypeSession, "Cleared %d stale active flag(s)", cleared)
	}

	ss.active = sess
	if sess != nil {
		ss.metrics.SetActiveStation(sess.StationID)
		ss.logger.Infof(providers.TypeSession, "Restored session %s started %s", sess.StationID, sess.Start().In(loc).Format(time.RFC3339))
	} else {
		ss.metrics.SetActiveStation("")
	}
	return nil
}

// Toggle opens, closes or switches the session for stationID in one ledger update.
func (ss *SessionService) Toggle(stationID string) error {
	if _, ok := ss.catalog.Lookup(stationID); !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownStation, stationID)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := ss.policy.Now()
	prev := ss.active
	var next *models.ActiveSession
	var elapsed uint

	err := ss.ledger.Update(func(l *models.Ledger) error {
		if prev != nil {
			day, label := ss.closingBucket(prev, shift.DayKey(now), shift.Label(now))
			elapsed = ss.accumulate(l, prev, now, day, label)
		}
		if prev == nil || prev.StationID != stationID {
			next = models.NewActiveSession(stationID, now)
			ss.open(l, stationID, now)
		}
		return nil
	})
	if errors.Is(err, models.ErrLedgerNotLoaded) {
		return err
	}

	// The ledger already holds the new state even when the write failed.
	ss.active = next
	ss.observeToggle(prev, next, elapsed)

	if saveErr := ss.ledger.SaveActiveSession(next); saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}

func (ss *SessionService) observeToggle(prev, next *models.ActiveSession, elapsed uint) {
	switch {
	case prev == nil:
		ss.metrics.IncToggles("open")
		ss.logger.Infof(providers.TypeSession, "Opened %s", next.StationID)
	case next == nil:
		ss.metrics.IncToggles("close")
		ss.logger.Infof(providers.TypeSession, "Closed %s after %ds", prev.StationID, elapsed)
	default:
		ss.metrics.IncToggles("switch")
		ss.logger.Infof(providers.TypeSession, "Switched %s -> %s, %s ran %ds", prev.StationID, next.StationID, prev.StationID, elapsed)
	}
	if prev != nil {
		ss.metrics.AddDowntime(prev.StationID, elapsed)
	}
	if next != nil {
		ss.metrics.SetActiveStation(next.StationID)
	} else {
		ss.metrics.SetActiveStation("")
	}
}

// open marks the station's current bucket active. A record that is already
// active is resumed without counting another stop.
func (ss *SessionService) open(l *models.Ledger, stationID string, now time.Time) {
	ref := models.RecordRef{Day: shift.DayKey(now), Shift: shift.Label(now), StationID: stationID}
	rec := l.Record(ref.Day, ref.Shift, ref.StationID)
	if !rec.Active {
		rec.ClickCount++
	}
	rec.Active = true
	l.ClearAllActive(&ref)
}

// accumulate adds the session's elapsed seconds to (day, label) and clears the
// station's active flags everywhere.
func (ss *SessionService) accumulate(l *models.Ledger, sess *models.ActiveSession, now time.Time, day, label string) uint {
	elapsed := sess.ElapsedSeconds(now)
	rec := l.Record(day, label, sess.StationID)
	rec.TotalSeconds += elapsed
	l.ClearActive(sess.StationID)
	return elapsed
}

func (ss *SessionService) closingBucket(sess *models.ActiveSession, day, label string) (string, string) {
	if ss.bucket != BucketOpened {
		return day, label
	}
	start := sess.Start().In(ss.policy.Now().Location())
	return shift.DayKey(start), shift.Label(start)
}

func (ss *SessionService) ElapsedDisplaySeconds(now time.Time) uint {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.active.ElapsedSeconds(now)
}

// Heartbeat rewrites the stored session when storage disagrees with memory.
func (ss *SessionService) Heartbeat() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	stored, err := ss.ledger.LoadActiveSession()
	if err == nil {
		switch {
		case stored == nil && ss.active == nil:
			return nil
		case stored != nil && ss.active != nil && *stored == *ss.active:
			return nil
		}
	}
	ss.logger.Debugf(providers.TypeSession, "Re-persisting active session")
	return ss.ledger.SaveActiveSession(ss.active)
}

// ForceCutover closes a running session into (asOfShift, asOfDay) without counting
// a stop, then clears the session. Calling it while idle only clears storage.
func (ss *SessionService) ForceCutover(asOfShift, asOfDay string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	prev := ss.active
	if prev == nil {
		return ss.ledger.SaveActiveSession(nil)
	}

	now := ss.policy.Now()
	var elapsed uint
	day, label := ss.closingBucket(prev, asOfDay, asOfShift)
	err := ss.ledger.Update(func(l *models.Ledger) error {
		elapsed = ss.accumulate(l, prev, now, day, label)
		return nil
	})
	if errors.Is(err, models.ErrLedgerNotLoaded) {
		return err
	}

	ss.active = nil
	ss.metrics.SetActiveStation("")
	ss.metrics.AddDowntime(prev.StationID, elapsed)
	ss.logger.Infof(providers.TypeSession, "Cut over %s: %ds into %s/%s", prev.StationID, elapsed, day, label)

	if saveErr := ss.ledger.SaveActiveSession(nil); saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}

// Active returns a copy of the open session, or nil when idle.
func (ss *SessionService) Active() *models.ActiveSession {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.active == nil {
		return nil
	}
	cp := *ss.active
	return &cp
}

// Status summarises today's committed totals across all shifts plus the open session.
func (ss *SessionService) Status() *models.Status {
	ss.mu.Lock()
	active := ss.active
	ss.mu.Unlock()

	now := ss.policy.Now()
	today := shift.DayKey(now)
	snapshot := ss.ledger.Snapshot()

	elapsed := active.ElapsedSeconds(now)
	status := &models.Status{
		ElapsedSeconds: elapsed,
		Elapsed:        shift.FormatClock(elapsed),
		Day:            today,
		Shift:          shift.Label(now),
		EndWindow:      shift.IsEndWindow(now),
	}
	if active != nil {
		status.ActiveStation = active.StationID
		status.ActiveName = ss.catalog.Name(active.StationID)
		status.StartEpochMs = active.StartEpochMs
	}

	shifts := snapshot.Days[today]
	for _, station := range ss.catalog.All() {
		totals := models.StationTotals{
			StationID: station.ID,
			Name:      station.Name,
			Active:    active != nil && active.StationID == station.ID,
		}
		for _, label := range shift.Labels {
			if rec, ok := shifts[label][station.ID]; ok {
				totals.ClickCount += rec.ClickCount
				totals.TotalSeconds += rec.TotalSeconds
			}
		}
		totals.Total = shift.FormatClock(totals.TotalSeconds)
		status.Stations = append(status.Stations, totals)
	}
	return status
}

func NewSessionService(conf *structures.Config, ledger LedgerServiceInterface, catalog *models.Catalog, policy *shift.Policy, logger providers.Logger, metrics providers.MetricsProviderInterface) SessionServiceInterface {
	bucket := conf.Shift.CutoverBucket
	if bucket == "" {
		bucket = BucketCutover
	}
	return &SessionService{
		ledger:  ledger,
		catalog: catalog,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
		bucket:  bucket,
	}
}
