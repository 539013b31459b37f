package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("pw12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "pw12345678", digest)

	assert.True(t, Verify(digest, "pw12345678"))
	assert.False(t, Verify(digest, "wrong-password"))
}

func TestVerify_GarbageDigest(t *testing.T) {
	// A malformed digest must fail verification, not panic or error out.
	assert.False(t, Verify("not-a-bcrypt-digest", "anything"))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
