package memory

import "sync"

// UserRepo keeps authorized users for the lifetime of the process
type UserRepo struct {
	mu         sync.RWMutex
	authorized map[int64]struct{}
}

// NewUserRepo creates an empty in-memory user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{authorized: make(map[int64]struct{})}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.authorized[userID]
	return ok, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authorized[userID] = struct{}{}
	return nil
}
