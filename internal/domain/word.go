package domain

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Entry represents a word-definition pair
type Entry struct {
	Word       string
	Definition string
}

// MarshalJSON encodes the entry as a two-element array: [word, definition]
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Word, e.Definition})
}

// UnmarshalJSON decodes a two-element array of strings
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("entry must be an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("entry must have exactly 2 elements, got %d", len(pair))
	}

	word, err := decodeString(pair[0])
	if err != nil {
		return fmt.Errorf("entry word: %w", err)
	}
	definition, err := decodeString(pair[1])
	if err != nil {
		return fmt.Errorf("entry definition: %w", err)
	}

	e.Word = word
	e.Definition = definition
	return nil
}

// decodeString rejects null, which json would otherwise accept for a string
func decodeString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("must be a string, got %s", raw)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Matches reports whether query is a case-insensitive substring of the word or definition
func (e Entry) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Word), q) ||
		strings.Contains(strings.ToLower(e.Definition), q)
}

// WordList is an insertion-ordered collection of entries keyed by Word.
// Methods never modify the receiver.
type WordList []Entry

// Contains reports whether an entry with exactly this word exists
func (l WordList) Contains(word string) bool {
	_, ok := l.Find(word)
	return ok
}

// Find returns the first entry whose word equals the given key
func (l WordList) Find(word string) (Entry, bool) {
	for _, e := range l {
		if e.Word == word {
			return e, true
		}
	}
	return Entry{}, false
}

// Add returns a new list with the pair appended.
// Fails with ErrDuplicateWord if the word is already present.
func (l WordList) Add(word, definition string) (WordList, error) {
	if l.Contains(word) {
		return l, fmt.Errorf("%w: %q", ErrDuplicateWord, word)
	}

	out := make(WordList, len(l), len(l)+1)
	copy(out, l)
	return append(out, Entry{Word: word, Definition: definition}), nil
}

// Remove returns a new list without any entry whose word equals the key,
// along with the number of removed entries.
func (l WordList) Remove(word string) (WordList, int) {
	out := make(WordList, 0, len(l))
	for _, e := range l {
		if e.Word != word {
			out = append(out, e)
		}
	}
	return out, len(l) - len(out)
}

// Search yields, in order, every entry matching the query.
// An empty query matches everything.
func (l WordList) Search(query string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range l {
			if !e.Matches(query) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Clone returns a copy that does not share storage with l
func (l WordList) Clone() WordList {
	if l == nil {
		return WordList{}
	}
	out := make(WordList, len(l))
	copy(out, l)
	return out
}
