package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("password")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "password", digest)
	assert.True(t, CheckPassword(digest, "password"))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("password")
	require.NoError(t, err)
	second, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "password"))
	assert.True(t, CheckPassword(second, "password"))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("password")
	require.NoError(t, err)
	assert.False(t, CheckPassword(digest, "not-the-password"))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("", "password"))
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "password"))
}
