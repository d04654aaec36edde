package interfaces

// KVStoreInterface is the synchronous string-keyed byte store the ledger is persisted in.
// Get reports a missing key as ok=false with a nil error.
type KVStoreInterface interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
