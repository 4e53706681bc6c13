package utils // package utils provides helper functions for hashing and token generation

import (
    "crypto/rand"  // secure random number generation
    "encoding/hex" // hex encoding of random bytes
)

// NewSessionToken returns an opaque, unguessable session identifier: 32
// bytes of cryptographically secure random data encoded as 64 hex
// characters.  Collisions are negligible by construction and are not
// checked by callers.
func NewSessionToken() (string, error) {
    return randomHex(32)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.  If the random number generator
// fails, an error is returned.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
