package client

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Store owns the client State and persists it after every change.
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
	log     *logrus.Logger
}

// NewStore rehydrates state from storage. Read failures fall back to defaults.
func NewStore(storage Storage, logger *logrus.Logger) *Store {
	data, err := storage.Load(StorageKey)
	if err != nil {
		logger.Warnf("Failed to load saved state, using defaults: %v", err)
	}
	return &Store{
		state:   LoadState(data),
		storage: storage,
		log:     logger,
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn, saves the result and returns it.
func (s *Store) Update(fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	data, err := s.state.Marshal()
	if err == nil {
		err = s.storage.Save(StorageKey, data)
	}
	if err != nil {
		s.log.Warnf("Failed to save state: %v", err)
	}
	return s.state
}
