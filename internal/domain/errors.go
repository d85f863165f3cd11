package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateWord is returned when adding a word that already exists
	ErrDuplicateWord = errors.New("word already exists")
	// ErrEmptyField is returned when the word or definition is blank
	ErrEmptyField = errors.New("word and definition cannot be empty")
	// ErrEmptyList signals there is nothing to quiz on
	ErrEmptyList = errors.New("no words available")
)

// StorageReadError reports a persisted document that exists but cannot be decoded
type StorageReadError struct {
	Source string
	Err    error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read word list from %s: %v", e.Source, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError reports a failure to persist the word list
type StorageWriteError struct {
	Source string
	Err    error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write word list to %s: %v", e.Source, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
