// Package uniuri generates cryptographically secure random strings.
// It is used for the dev-mode session signing secret and CSRF-style nonces.
package uniuri

import (
	"crypto/rand"
)

const (
	// StdLen is a standard length of a uniuri string to achieve ~95 bits of entropy.
	StdLen = 16

	// SecretLen is the length used for generated session signing secrets.
	SecretLen = 48

	// maxByteValue is the maximum value of a byte (2^8 - 1).
	maxByteValue = 255

	// byteRange is the total number of possible byte values (2^8).
	byteRange = 256
)

// StdChars is the set of characters allowed in a uniuri string.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a new random string of the standard length.
func New() string {
	return NewLen(StdLen)
}

// NewSecret returns a random string long enough to serve as an HMAC secret.
func NewSecret() string {
	return NewLen(SecretLen)
}

// NewLen returns a new random string of the provided length, consisting of
// standard characters. Bytes that would introduce modulo bias are rejected
// and redrawn.
func NewLen(length int) string {
	if length == 0 {
		return ""
	}

	clen := len(StdChars)
	maxRb := maxByteValue - (byteRange % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			c := int(rb)
			if c > maxRb {
				// Skip this number to avoid modulo bias.
				continue
			}

			out = append(out, StdChars[c%clen])
			if len(out) == length {
				return string(out)
			}
		}
	}
}
