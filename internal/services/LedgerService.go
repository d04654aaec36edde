package services

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"picktime/internal/models"
	"picktime/internal/persistence/interfaces"
	"picktime/internal/providers"
	"picktime/internal/shift"
)

// Keys shared with the device's existing storage.
const (
	KeyLedger         = "registrosPickTime"
	KeyActiveStation  = "postoAtivoPickTime"
	KeyStartTime      = "startTimePickTime"
	KeyLastKnownShift = "lastKnownTurnoPickTime"
)

type LedgerServiceInterface interface {
	Load() error
	Loaded() bool
	Snapshot() *models.Ledger
	Update(fn func(l *models.Ledger) error) error
	Revision() uint64
	LastKnownShift() (string, error)
	SetLastKnownShift(label string) error
	LoadActiveSession() (*models.ActiveSession, error)
	SaveActiveSession(s *models.ActiveSession) error
}

type LedgerService struct {
	mu       sync.Mutex
	kv       interfaces.KVStoreInterface
	policy   *shift.Policy
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	ledger   *models.Ledger
	loaded   bool
	readOnly bool
	revision uint64
}

// Load reads and migrates the persisted ledger. It runs once; later calls are no-ops.
// Malformed or legacy data is logged and recovered from, only storage read
// errors are returned.
func (ls *LedgerService) Load() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.loaded {
		return nil
	}

	raw, ok, err := ls.kv.Get(KeyLedger)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyLedger, err)
	}
	if !ok {
		ls.logger.Infof(providers.TypeApp, "No ledger stored, starting empty")
		ls.ledger = models.NewLedger()
		ls.loaded = true
		ls.revision++
		return nil
	}

	res, err := models.DecodeLedger(raw, ls.policy.CurrentShift())
	switch {
	case errors.Is(err, models.ErrUnmigratableLegacyShape):
		ls.logger.Warnf(providers.TypeApp, "Ledger migration skipped: %s", err)
	case errors.Is(err, models.ErrMalformedPersistedData):
		ls.logger.Warnf(providers.TypeApp, "Ledger unreadable, starting empty: %s", err)
	case err != nil:
		return err
	}

	ls.ledger = res.Ledger
	ls.loaded = true
	ls.revision++

	for _, ref := range res.Relabelled {
		ls.logger.Warnf(providers.TypeApp, "Record %s/%s had no shift, filed under %s", ref.Day, ref.StationID, ref.Shift)
	}

	switch {
	case res.Migrated && ls.readOnly:
		ls.logger.Infof(providers.TypeApp, "Ledger in %s shape read without migrating", res.Shape)
	case res.Migrated:
		ls.logger.Infof(providers.TypeApp, "Migrating ledger from %s shape", res.Shape)
		if err := ls.persist(); err != nil {
			return err
		}
	}
	ls.metrics.SetLedgerDays(len(ls.ledger.Days))
	ls.logger.Infof(providers.TypeApp, "Ledger loaded: %d day(s), shape %s", len(ls.ledger.Days), res.Shape)
	return nil
}

func (ls *LedgerService) Loaded() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.loaded
}

// Snapshot returns a deep copy; before Load it is empty.
func (ls *LedgerService) Snapshot() *models.Ledger {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if !ls.loaded {
		return models.NewLedger()
	}
	return ls.ledger.Clone()
}

// Update applies fn to a copy of the ledger and, when fn succeeds, swaps it in and
// writes the whole ledger. A failed write leaves the new state in memory and
// returns an error wrapping models.ErrPersistFailed.
func (ls *LedgerService) Update(fn func(l *models.Ledger) error) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.loaded {
		return models.ErrLedgerNotLoaded
	}

	next := ls.ledger.Clone()
	if err := fn(next); err != nil {
		return err
	}
	ls.ledger = next
	ls.revision++
	ls.metrics.SetLedgerDays(len(next.Days))
	return ls.persist()
}

func (ls *LedgerService) Revision() uint64 {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.revision
}

// persist expects ls.mu held.
func (ls *LedgerService) persist() error {
	if ls.readOnly {
		return models.ErrReadOnlyLedger
	}
	start := time.Now()
	data, err := json.Marshal(ls.ledger)
	if err != nil {
		return fmt.Errorf("%w: encode ledger: %w", models.ErrPersistFailed, err)
	}
	if err := ls.kv.Set(KeyLedger, data); err != nil {
		ls.logger.Errorf(providers.TypeApp, "Error while persisting ledger: %s", err)
		return fmt.Errorf("%w: %w", models.ErrPersistFailed, err)
	}
	ls.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// LastKnownShift returns "" when nothing was stored.
func (ls *LedgerService) LastKnownShift() (string, error) {
	raw, ok, err := ls.kv.Get(KeyLastKnownShift)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", KeyLastKnownShift, err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

func (ls *LedgerService) SetLastKnownShift(label string) error {
	if ls.readOnly {
		return models.ErrReadOnlyLedger
	}
	if err := ls.kv.Set(KeyLastKnownShift, []byte(label)); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrPersistFailed, KeyLastKnownShift, err)
	}
	return nil
}

// LoadActiveSession returns nil when no session is stored. A session with only one
// of its two keys, or an unparseable start, yields ErrMalformedPersistedData.
func (ls *LedgerService) LoadActiveSession() (*models.ActiveSession, error) {
	id, idOk, err := ls.kv.Get(KeyActiveStation)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyActiveStation, err)
	}
	start, startOk, err := ls.kv.Get(KeyStartTime)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyStartTime, err)
	}

	idOk = idOk && len(id) > 0
	startOk = startOk && len(start) > 0
	switch {
	case !idOk && !startOk:
		return nil, nil
	case idOk != startOk:
		return nil, fmt.Errorf("%w: half-stored session (station=%t, start=%t)", models.ErrMalformedPersistedData, idOk, startOk)
	}

	ms, err := strconv.ParseInt(string(start), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", models.ErrMalformedPersistedData, KeyStartTime, start)
	}
	return &models.ActiveSession{StationID: string(id), StartEpochMs: ms}, nil
}

// SaveActiveSession writes both keys, or deletes both for nil.
func (ls *LedgerService) SaveActiveSession(s *models.ActiveSession) error {
	if ls.readOnly {
		return models.ErrReadOnlyLedger
	}
	if s == nil {
		if err := ls.kv.Delete(KeyActiveStation); err != nil {
			return fmt.Errorf("%w: %s: %w", models.ErrPersistFailed, KeyActiveStation, err)
		}
		if err := ls.kv.Delete(KeyStartTime); err != nil {
			return fmt.Errorf("%w: %s: %w", models.ErrPersistFailed, KeyStartTime, err)
		}
		return nil
	}
	if err := ls.kv.Set(KeyActiveStation, []byte(s.StationID)); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrPersistFailed, KeyActiveStation, err)
	}
	if err := ls.kv.Set(KeyStartTime, []byte(strconv.FormatInt(s.StartEpochMs, 10))); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrPersistFailed, KeyStartTime, err)
	}
	return nil
}

func NewLedgerService(kv interfaces.KVStoreInterface, policy *shift.Policy, logger providers.Logger, metrics providers.MetricsProviderInterface) LedgerServiceInterface {
	return &LedgerService{
		kv:      kv,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
		ledger:  models.NewLedger(),
	}
}

// NewReadOnlyLedgerService loads and migrates in memory only. Every write of the
// ledger fails with models.ErrReadOnlyLedger, so a running server's document is
// never touched by offline readers.
func NewReadOnlyLedgerService(kv interfaces.KVStoreInterface, policy *shift.Policy, logger providers.Logger, metrics providers.MetricsProviderInterface) LedgerServiceInterface {
	ls := NewLedgerService(kv, policy, logger, metrics).(*LedgerService)
	ls.readOnly = true
	return ls
}
