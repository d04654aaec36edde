package persistence

import (
	"fmt"

	"picktime/internal/persistence/interfaces"
	"picktime/internal/providers"
	"picktime/internal/structures"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

func NewCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	if !conf.Persistence.Compress {
		return &plainCompression{}, nil
	}
	return NewZstdCompressor()
}

// NewKVStore opens the backend named by persistence.driver.
func NewKVStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.KVStoreInterface, error) {
	switch conf.Persistence.Driver {
	case DriverFile, "":
		logger.Infof(providers.TypeApp, "Using file store %s", conf.Persistence.FilePath)
		return NewFileStore(conf.Persistence.FilePath, compressor, logger)
	case DriverSQLite:
		logger.Infof(providers.TypeApp, "Using sqlite store %s", conf.Persistence.FilePath)
		return NewSQLiteStore(conf.Persistence.FilePath)
	case DriverMemory:
		logger.Warnf(providers.TypeApp, "Using memory store, data is lost on exit")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", conf.Persistence.Driver)
	}
}
