package postgres

import (
	"database/sql"
	"fmt"

	"dictioquiz/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

const (
	wordsTable = "word_entries"
	// Rows per INSERT statement, keeps the parameter count well below the protocol limit
	insertBatchSize = 1000
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// Load returns all entries in their stored order
func (r *WordRepo) Load() (domain.WordList, error) {
	query, args, err := psql.
		Select("word", "definition").
		From(wordsTable).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, &domain.StorageReadError{Source: wordsTable, Err: err}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, &domain.StorageReadError{Source: wordsTable, Err: err}
	}
	defer rows.Close()

	list := domain.WordList{}
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Word, &e.Definition); err != nil {
			return nil, &domain.StorageReadError{Source: wordsTable, Err: err}
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageReadError{Source: wordsTable, Err: err}
	}

	return list, nil
}

// Save replaces the stored list in a single transaction
func (r *WordRepo) Save(list domain.WordList) error {
	if err := r.replaceAll(list); err != nil {
		return &domain.StorageWriteError{Source: wordsTable, Err: err}
	}
	return nil
}

func (r *WordRepo) replaceAll(list domain.WordList) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ` + wordsTable); err != nil {
		return fmt.Errorf("failed to clear words: %w", err)
	}

	for start := 0; start < len(list); start += insertBatchSize {
		end := min(start+insertBatchSize, len(list))

		insert := psql.Insert(wordsTable).Columns("position", "word", "definition")
		for i := start; i < end; i++ {
			insert = insert.Values(i, list[i].Word, list[i].Definition)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert words: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
