// KeyEnvelope struct definition
package onioncrypto

import (
	"crypto/rsa"
	"sync/atomic"
)

// KeyEnvelope owns one public/private keypair, tagged with its algorithm
// family and shared between logical owners through a reference count.
//
// The key material may be absent (nothing loaded yet), public-only, or
// carry the private component as well. Operations that need the private
// half fail cleanly with ErrNoPrivateComponent when only the public half
// is present.
//
// Envelopes are not internally synchronized: concurrent mutation of one
// envelope is the caller's problem. The reference count itself is atomic,
// so Dup and Release are safe to race against each other across owners
// (e.g. circuits sharing a router identity key).
type KeyEnvelope struct {
	algorithm KeyAlgorithm
	refs      atomic.Int32

	// priv and pub hold the provider's structured key objects. They are
	// replaced only by construct-new-then-swap inside Generate and the
	// load operations; raw byte overwrite of a structured key is not
	// offered anywhere in the API.
	priv *rsa.PrivateKey
	pub  *rsa.PublicKey
}

// NewKeyEnvelope creates an empty key envelope for the given algorithm
// with a reference count of one.
func NewKeyEnvelope(alg KeyAlgorithm) (*KeyEnvelope, error) {
	if alg != KeyAlgRSA {
		return nil, ErrUnsupportedAlgorithm
	}
	k := &KeyEnvelope{algorithm: alg}
	k.refs.Store(1)
	return k, nil
}

// Algorithm returns the envelope's algorithm tag.
func (k *KeyEnvelope) Algorithm() KeyAlgorithm {
	return k.algorithm
}

// HasKey reports whether any key material is loaded.
func (k *KeyEnvelope) HasKey() bool {
	return k.pub != nil
}

// HasPrivate reports whether the private component is loaded.
func (k *KeyEnvelope) HasPrivate() bool {
	return k.priv != nil
}

// Dup increments the reference count and returns a handle aliasing the
// same key material. It never deep-copies.
func (k *KeyEnvelope) Dup() *KeyEnvelope {
	k.refs.Add(1)
	return k
}

// Release decrements the reference count. When the count reaches zero the
// key material is dropped; the longest holder releases the key.
func (k *KeyEnvelope) Release() {
	if k == nil {
		return
	}
	if k.refs.Add(-1) > 0 {
		return
	}
	k.priv = nil
	k.pub = nil
}
