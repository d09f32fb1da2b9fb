package onioncrypto

import (
	"crypto/rand"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// Randomness utility, two strength tiers.
//
// StrongRand draws from the operating system's entropy source and is the
// only tier suitable for key and IV material. FastRand is a ChaCha20
// keystream generator seeded once from the strong tier: cheap, never
// blocking after the seed, but not forward-secure, so it must never feed
// key generation.

var (
	fastMu     sync.Mutex
	fastStream *chacha20.Cipher
)

// StrongRand returns n cryptographically strong random bytes.
func StrongRand(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		recordProviderError("strong_rand", err)
		return nil, fmt.Errorf("%w: %v", ErrEntropyFailure, err)
	}
	return b, nil
}

// FastRand returns n bytes from the fast, non-blocking tier. Callers must
// not use the output for key generation.
func FastRand(n int) ([]byte, error) {
	fastMu.Lock()
	defer fastMu.Unlock()

	if fastStream == nil {
		seed, err := StrongRand(chacha20.KeySize + chacha20.NonceSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRngFailure, err)
		}
		s, err := chacha20.NewUnauthenticatedCipher(seed[:chacha20.KeySize], seed[chacha20.KeySize:])
		if err != nil {
			recordProviderError("fast_rand", err)
			return nil, fmt.Errorf("%w: %v", ErrRngFailure, err)
		}
		fastStream = s
	}

	out := make([]byte, n)
	fastStream.XORKeyStream(out, out)
	return out, nil
}
