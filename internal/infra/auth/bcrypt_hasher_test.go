package auth

import (
	"strings"
	"testing"

	"signin/config"
	domainerrors "signin/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *bcryptHasher {
	t.Helper()

	hasher, err := NewBcryptHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)

	return hasher.(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher(t)

	password := "correct-pw"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	// Same input, different salt.
	other, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	assert.True(t, hasher.Check(password, hash))
	assert.True(t, hasher.Check(password, other))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher(t)
	password := "correct-pw"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong-pw", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password+" ", hash))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := newTestHasher(t)

	malformed := []string{
		"",
		"invalid_hash",
		"$2a$",
		"$9z$10$abcdefghijklmnopqrstuvABCDEFGHIJKLMNOPQRSTUVWXYZ01234",
		"$2a$99$abcdefghijklmnopqrstuvABCDEFGHIJKLMNOPQRSTUVWXYZ01234",
		"correct-pw",
	}

	for _, hash := range malformed {
		assert.NotPanics(t, func() {
			assert.False(t, hasher.Check("correct-pw", hash), "hash %q must not match", hash)
		})
	}
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := bcrypt.MinCost + 1
	hasher, err := NewBcryptHasherWithCost(customCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("correct-pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_FromConfig(t *testing.T) {
	hasher, err := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})
	require.NoError(t, err)

	impl := hasher.(*bcryptHasher)
	assert.Equal(t, bcrypt.MinCost, impl.cost)

	cost, err := bcrypt.Cost(impl.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher, err := NewBcryptHasherWithCost(bcrypt.MaxCost + 1)
	require.NoError(t, err)

	assert.Equal(t, bcrypt.DefaultCost, hasher.(*bcryptHasher).cost)
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	hasher := newTestHasher(t)

	_, err := hasher.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooLong))
}

func TestBcryptHasher_CheckDummy(t *testing.T) {
	hasher := newTestHasher(t)

	assert.NotPanics(t, func() {
		hasher.CheckDummy("anything")
		hasher.CheckDummy("")
	})
	assert.False(t, hasher.Check("anything", string(hasher.dummyHash)))
}
