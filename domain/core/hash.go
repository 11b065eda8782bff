package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SeedFromString derives a deterministic RNG seed from an arbitrary string.
// The first 4 bytes of the SHA-256 digest are interpreted as a big-endian
// unsigned integer, so the same string always yields the same seed.
func SeedFromString(s string) int64 {
	sum := sha256.Sum256([]byte(s))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// SeedForRows derives the default generator seed for an n-row dataset.
func SeedForRows(n int) int64 {
	return SeedFromString(fmt.Sprintf("rows=%d", n))
}
