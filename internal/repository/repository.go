package repository

import (
	"dictioquiz/internal/domain"
)

// WordRepository persists the whole word list as one document.
// Load returns an empty list when nothing has been saved yet.
type WordRepository interface {
	Load() (domain.WordList, error)
	Save(list domain.WordList) error
}

// UserRepository defines bot authorization operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
}
