// CipherEnvelope struct definition
package onioncrypto

import (
	"crypto/cipher"
)

// cipherState tracks the envelope's initialization state machine:
//
//	cipherUninitialized -> cipherEncrypting | cipherDecrypting
//
// The transition is terminal for the life of the envelope; there is no way
// back to uninitialized, and the direction chosen at init is the only one
// whose update entry point works afterwards.
type cipherState int

const (
	cipherUninitialized cipherState = iota
	cipherEncrypting
	cipherDecrypting
	cipherReleased
)

// CipherEnvelope owns one symmetric cipher engine plus its key and IV
// buffers, tagged with its algorithm and specialized to one direction at
// initialization.
//
// All supported algorithms behave as keystream generators (OFB-mode block
// ciphers and RC4), so updates are length-preserving and sequential calls
// on one envelope concatenate into a single continuous cipher stream.
//
// Envelopes are not internally synchronized; concurrent use of one
// envelope must be prevented by the caller.
type CipherEnvelope struct {
	algorithm CipherAlgorithm
	state     cipherState

	// key and iv are owned buffers sized exactly to the algorithm's
	// declared lengths; zero-length algorithms get empty buffers.
	key []byte
	iv  []byte

	// keySet and ivSet record whether the buffers have been populated.
	// Initialization refuses to bind unpopulated parameters.
	keySet bool
	ivSet  bool

	// engine is the provider's keystream state, built once at init and
	// never rebuilt.
	engine cipher.Stream
}

// NewCipherEnvelope allocates a cipher envelope for the given algorithm
// with exact-size key and IV buffers and an uninitialized engine.
func NewCipherEnvelope(alg CipherAlgorithm) (*CipherEnvelope, error) {
	p, ok := cipherTable[alg]
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return &CipherEnvelope{
		algorithm: alg,
		key:       make([]byte, p.keyLen),
		iv:        make([]byte, p.ivLen),
	}, nil
}

// Algorithm returns the envelope's algorithm tag.
func (c *CipherEnvelope) Algorithm() CipherAlgorithm {
	return c.algorithm
}

// Release drops the engine state and the key and IV buffers, in that
// order. It is safe to call on a partially constructed or already
// released envelope.
func (c *CipherEnvelope) Release() {
	if c == nil {
		return
	}
	c.engine = nil
	c.iv = nil
	c.key = nil
	c.keySet = false
	c.ivSet = false
	c.state = cipherReleased
}
