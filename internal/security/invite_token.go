package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// inviteTokenBytes is the entropy behind every invite and link token. The
// token is a bearer credential, so it must be unguessable.
const inviteTokenBytes = 24

// NewInviteToken returns a URL-safe opaque token with 24 bytes of
// cryptographically secure randomness.
func NewInviteToken() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
