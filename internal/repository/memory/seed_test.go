package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/garage-service/internal/domain"
)

func TestDefaultSeedCredentials(t *testing.T) {
	seed := DefaultSeed()
	require.Len(t, seed.Users, 3)

	roles := map[domain.Role]bool{}
	for _, u := range seed.Users {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DemoPassword))
		assert.NoError(t, err, u.Email)
		assert.True(t, u.Active, u.Email)
		roles[u.Role] = true
	}

	assert.True(t, roles[domain.RoleCustomer])
	assert.True(t, roles[domain.RoleStaff])
	assert.True(t, roles[domain.RoleAdmin])
}
