package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateSessionID()
		assert.True(t, ValidSessionID(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, GenerateGameID(), 32)
	assert.False(t, ValidSessionID("not-an-id"))
}

func TestSessionIDForIsStable(t *testing.T) {
	a := SessionIDFor("SHA256:abc")
	assert.Equal(t, a, SessionIDFor("SHA256:abc"))
	assert.NotEqual(t, a, SessionIDFor("SHA256:abd"))
	assert.True(t, ValidSessionID(a))
}
