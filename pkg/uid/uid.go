package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID returns a random id for one game.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateSessionID returns a random id for a player session.
func GenerateSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id has the form GenerateSessionID produces.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// SessionIDFor derives a stable session id from an external identity such as
// an SSH key fingerprint, so the same player finds their game again.
func SessionIDFor(identity string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("vier-gewinnt:"+identity)).String()
}
