package util

import (
	"crypto/rand"
	"time"

	"github.com/dchest/uniuri"
	"github.com/oklog/ulid/v2"
)

const (
	codeLen   = 6
	codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateCode produces a 6-character verification code drawn from A-Z0-9.
// It is a human-readable shared secret, not a security token, and global
// uniqueness is not checked.
func GenerateCode() string {
	return uniuri.NewLenChars(codeLen, []byte(codeChars))
}

// NewID generates a new ULID string for record and job identifiers.
func NewID() string {
	t := time.Now()
	entropy := ulid.Monotonic(rand.Reader, 0)

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
