package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"picktime/internal/persistence/interfaces"
	"picktime/internal/providers"
)

// FileStore keeps every key in one document that is rewritten atomically on each mutation.
type FileStore struct {
	mu         sync.Mutex
	path       string
	data       map[string]string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) (*FileStore, error) {
	fs := &FileStore{
		path:       path,
		data:       make(map[string]string),
		compressor: compressor,
		logger:     logger,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) ([]byte, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	val, ok := fs.data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(val), true, nil
}

// Set keeps the value in memory even when the write fails; the next successful
// write carries it to disk.
func (fs *FileStore) Set(key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[key] = string(value)
	return fs.flush()
}

func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

func (fs *FileStore) Close() error {
	fs.compressor.Close()
	return nil
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}

	decompressed, err := fs.compressor.Decompress(data)
	if err != nil {
		// Written before compression was switched on.
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
			fs.logger.Warnf(providers.TypeApp, "Store %s is not compressed, reading as plain JSON", fs.path)
			decompressed = data
		} else {
			return err
		}
	}

	var kv map[string]string
	if err := json.Unmarshal(decompressed, &kv); err != nil {
		return err
	}
	if kv != nil {
		fs.data = kv
	}
	return nil
}

func (fs *FileStore) flush() error {
	jsonData, err := json.Marshal(fs.data)
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fs.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpFile := fs.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fs.path)
}
