package store

import (
	"encoding/json"
	"os"
	"sync"

	"deliverytrack/internal/apperr"
	"deliverytrack/internal/model"
)

// ConfigStore persists the singleton Configuration record. Updates are
// whole-record: callers read, change, and Put back.
type ConfigStore interface {
	Get() (model.Config, error)
	Put(cfg model.Config) error
}

// MemoryConfig keeps the configuration in memory.
type MemoryConfig struct {
	mu  sync.Mutex
	cfg model.Config
}

func NewMemoryConfig(initial model.Config) *MemoryConfig {
	return &MemoryConfig{cfg: initial}
}

func (c *MemoryConfig) Get() (model.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg, nil
}

func (c *MemoryConfig) Put(cfg model.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	return nil
}

// FileConfig keeps the configuration in its own JSON file, with the same
// lock and retry discipline as the entity files.
type FileConfig struct {
	path string
	mu   *sync.Mutex
}

// NewFileConfig opens the configuration file, seeding it with initial if it
// does not exist yet.
func NewFileConfig(path string, initial model.Config) (*FileConfig, error) {
	c := &FileConfig{path: path, mu: lockFor(path)}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := readFileRetry(path)
	if os.IsNotExist(err) {
		return c, c.save(initial)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *FileConfig) Get() (model.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cfg model.Config
	raw, err := readFileRetry(c.path)
	if os.IsNotExist(err) {
		return cfg, apperr.NotFound("configuration file %s", c.path)
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, apperr.Corrupted("decode %s: %v", c.path, err)
	}
	return cfg, nil
}

func (c *FileConfig) Put(cfg model.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(cfg)
}

func (c *FileConfig) save(cfg model.Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return apperr.Corrupted("encode %s: %v", c.path, err)
	}
	return writeFileRetry(c.path, raw)
}
