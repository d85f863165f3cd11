package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRepo(t *testing.T) {
	repo := NewUserRepo()

	authorized, err := repo.IsAuthorized(123)
	assert.NoError(t, err)
	assert.False(t, authorized)

	assert.NoError(t, repo.AuthorizeUser(123))
	assert.NoError(t, repo.AuthorizeUser(123))

	authorized, err = repo.IsAuthorized(123)
	assert.NoError(t, err)
	assert.True(t, authorized)

	authorized, err = repo.IsAuthorized(456)
	assert.NoError(t, err)
	assert.False(t, authorized)
}
