package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// shareTokenBytes gives 192 bits of entropy; collisions are negligible for
// the lifetime of the system.
const shareTokenBytes = 24

// NewShareToken returns a URL-safe opaque capability token.
func NewShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
