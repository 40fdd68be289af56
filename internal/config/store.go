package config

import (
	"sync"
	"sync/atomic"
	"time"
)

// snapshot pairs a validated configuration with its load time.
type snapshot struct {
	cfg      *Config
	loadedAt time.Time
}

// Store provides thread-safe access to the active compensation
// configuration. Reloads swap the whole Config atomically, so an in-flight
// evaluation never observes a half-updated coefficient set.
type Store struct {
	current atomic.Pointer[snapshot]
	mu      sync.Mutex // serializes reload operations
}

// NewStore creates a new empty Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the active configuration, or nil if none has been loaded.
func (s *Store) Get() *Config {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.cfg
}

// Set atomically replaces the active configuration.
func (s *Store) Set(cfg *Config) {
	s.current.Store(&snapshot{cfg: cfg, loadedAt: time.Now()})
}

// AgeSeconds returns the age of the active configuration in seconds.
// Returns -1 if no configuration is loaded.
func (s *Store) AgeSeconds() float64 {
	snap := s.current.Load()
	if snap == nil {
		return -1
	}
	return time.Since(snap.loadedAt).Seconds()
}

// Lock acquires the reload mutex for serializing reload operations.
func (s *Store) Lock() {
	s.mu.Lock()
}

// Unlock releases the reload mutex.
func (s *Store) Unlock() {
	s.mu.Unlock()
}
