package testutil

import (
	"dictioquiz/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test entry
func NewTestEntry(word, definition string) domain.Entry {
	return domain.Entry{Word: word, Definition: definition}
}

// NewTestWordList returns the cat/dog list used across tests
func NewTestWordList() domain.WordList {
	return domain.WordList{
		NewTestEntry("cat", "a small domesticated feline"),
		NewTestEntry("dog", "a domesticated canine"),
	}
}

// MemoryWordRepository is a WordRepository that keeps the last saved list.
// Set SaveErr to make the next saves fail.
type MemoryWordRepository struct {
	List    domain.WordList
	Saves   int
	SaveErr error
}

func (r *MemoryWordRepository) Load() (domain.WordList, error) {
	return r.List.Clone(), nil
}

func (r *MemoryWordRepository) Save(list domain.WordList) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saves++
	r.List = list.Clone()
	return nil
}
