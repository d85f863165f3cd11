package service

import (
	"iter"
	"strings"
	"sync"

	"dictioquiz/internal/domain"
	"dictioquiz/internal/repository"

	"go.uber.org/zap"
)

// WordStore owns the word list and flushes every change to the repository
type WordStore struct {
	repo   repository.WordRepository
	logger *zap.Logger

	mu    sync.RWMutex
	words domain.WordList
}

// NewWordStore creates a store with an empty list; call Load to populate it
func NewWordStore(repo repository.WordRepository, logger *zap.Logger) *WordStore {
	return &WordStore{
		repo:   repo,
		logger: logger,
		words:  domain.WordList{},
	}
}

// Load replaces the in-memory list with the persisted one.
// On error the current list is left untouched.
func (s *WordStore) Load() error {
	list, err := s.repo.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.words = list.Clone()
	s.mu.Unlock()

	s.logger.Info("Word list loaded", zap.Int("words", len(list)))
	return nil
}

// Entries returns a snapshot of the list
func (s *WordStore) Entries() domain.WordList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.words.Clone()
}

// Len returns the number of stored entries
func (s *WordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Add trims and stores a new pair, then persists the list.
// A persistence failure is returned but the pair stays in memory.
func (s *WordStore) Add(word, definition string) error {
	word = strings.TrimSpace(word)
	definition = strings.TrimSpace(definition)
	if word == "" || definition == "" {
		return domain.ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.words.Add(word, definition)
	if err != nil {
		return err
	}
	s.words = updated

	if err := s.repo.Save(updated); err != nil {
		s.logger.Error("Failed to persist word list after add",
			zap.Error(err),
			zap.String("word", word),
		)
		return err
	}
	return nil
}

// Remove deletes every entry with the given word and persists the list.
// It returns how many entries were removed; removing an absent word is a no-op.
func (s *WordStore) Remove(word string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, removed := s.words.Remove(word)
	if removed == 0 {
		return 0, nil
	}
	s.words = updated

	if err := s.repo.Save(updated); err != nil {
		s.logger.Error("Failed to persist word list after remove",
			zap.Error(err),
			zap.String("word", word),
		)
		return removed, err
	}
	return removed, nil
}

// Search yields matching entries from a snapshot taken at call time
func (s *WordStore) Search(query string) iter.Seq[domain.Entry] {
	return s.Entries().Search(query)
}
