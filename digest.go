package onioncrypto

import (
	"crypto/sha1"
)

// Digest returns the fixed 20-byte SHA-1 digest of m. Pure function, no
// persistent state. The error return exists for uniformity with the rest
// of the layer's fallible operations; with a fixed-size hash from the
// provider it is effectively unreachable.
func Digest(m []byte) ([]byte, error) {
	sum := sha1.Sum(m)
	return sum[:], nil
}
