package models

import "errors"

var (
	ErrMalformedPersistedData  = errors.New("malformed persisted data")
	ErrUnmigratableLegacyShape = errors.New("unmigratable legacy ledger shape")
	ErrUnknownStation          = errors.New("unknown station")
	ErrLedgerNotLoaded         = errors.New("ledger not loaded")
	ErrPersistFailed           = errors.New("persistence write failed")
	ErrInvalidDayKey           = errors.New("invalid day key")
	ErrReadOnlyLedger          = errors.New("ledger is read-only")
)
