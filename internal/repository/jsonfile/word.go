package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dictioquiz/internal/domain"
)

// WordRepo implements repository.WordRepository on top of a JSON document
// of the form [["word", "definition"], ...]
type WordRepo struct {
	path string
}

// NewWordRepo creates a new file-backed word repository
func NewWordRepo(path string) *WordRepo {
	return &WordRepo{path: path}
}

// Path returns the document location
func (r *WordRepo) Path() string {
	return r.path
}

// Load reads the document. A missing file is an empty list.
func (r *WordRepo) Load() (domain.WordList, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.WordList{}, nil
	}
	if err != nil {
		return nil, &domain.StorageReadError{Source: r.path, Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &domain.StorageReadError{
			Source: r.path,
			Err:    fmt.Errorf("document must be a JSON array"),
		}
	}

	var list domain.WordList
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, &domain.StorageReadError{Source: r.path, Err: err}
	}

	return list.Clone(), nil
}

// Save overwrites the document with the full list.
// The content is written to a temporary file and renamed into place.
func (r *WordRepo) Save(list domain.WordList) error {
	data, err := json.MarshalIndent(list.Clone(), "", "    ")
	if err != nil {
		return &domain.StorageWriteError{Source: r.path, Err: err}
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		return &domain.StorageWriteError{Source: r.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up unless the rename succeeded
	defer func() {
		if tmpName != "" {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}

	tmpName = ""
	return nil
}
