package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicket(t *testing.T) {
	raw, digest, err := GenerateTicket()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.NotEqual(t, raw, digest)
	assert.Equal(t, HashTicket(raw), digest)

	raw2, digest2, err := GenerateTicket()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, digest, digest2)
}

func TestHashTicketDeterministic(t *testing.T) {
	assert.Equal(t, HashTicket("abc"), HashTicket("abc"))
	assert.NotEqual(t, HashTicket("abc"), HashTicket("abd"))
	// hex-encoded SHA-256
	assert.Len(t, HashTicket("abc"), 64)
}
