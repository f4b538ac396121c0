package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash verifies against the original password", func(t *testing.T) {
		hashed, err := HashPassword("hunter2", bcrypt.MinCost)
		require.NoError(t, err)

		assert.NoError(t, ComparePassword(hashed, "hunter2"))
		assert.Error(t, ComparePassword(hashed, "hunter3"))
	})

	t.Run("out-of-range cost falls back to the default", func(t *testing.T) {
		for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
			hashed, err := HashPassword("hunter2", cost)
			require.NoError(t, err)

			got, err := bcrypt.Cost([]byte(hashed))
			require.NoError(t, err)
			assert.Equal(t, bcrypt.DefaultCost, got)
		}
	})
}
