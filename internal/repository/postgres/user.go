package postgres

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

const usersTable = "authorized_users"

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user has entered the bot password before
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	query, args, err := psql.
		Select("1").
		From(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// AuthorizeUser remembers the user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query, args, err := psql.
		Insert(usersTable).
		Columns("user_id").
		Values(userID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(query, args...)
	return err
}
