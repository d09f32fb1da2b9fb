package onioncrypto

import (
	"errors"
	"fmt"
)

// Standard envelope-layer error values.
//
// These errors follow Go 1.13+ error wrapping conventions and can be
// checked with errors.Is() and errors.As(). Fallible operations that fail
// inside the cryptographic provider wrap one of these sentinels around the
// provider's own error text, so callers dispatch on the sentinel and log
// the wrapped detail.
//
// Design rationale:
// - Use sentinel errors for the closed failure taxonomy of the layer
// - Use error types where an operation name or algorithm tag adds context
// - All errors are safe for wrapping with fmt.Errorf("%w", err)

var (
	// ErrUnsupportedAlgorithm indicates an unknown algorithm tag, or key
	// material of a different algorithm family than the envelope's tag.
	ErrUnsupportedAlgorithm = errors.New("onioncrypto: unsupported algorithm")

	// ErrNoKeyLoaded indicates an operation that needs key material was
	// called on an envelope with none loaded.
	ErrNoKeyLoaded = errors.New("onioncrypto: no key loaded")

	// ErrNoPrivateComponent indicates an operation that needs the private
	// half of a keypair found only the public half.
	ErrNoPrivateComponent = errors.New("onioncrypto: no private key component")

	// ErrParseFailure indicates malformed PEM input or a key block the
	// provider could not decode.
	ErrParseFailure = errors.New("onioncrypto: key parse failed")

	// ErrInvalidKey indicates a private key that parsed but failed the
	// validity check (or the check itself could not complete).
	ErrInvalidKey = errors.New("onioncrypto: private key is invalid")

	// ErrGenerationFailure indicates the provider could not generate a
	// keypair. The envelope is left empty, never holding a stale key.
	ErrGenerationFailure = errors.New("onioncrypto: key generation failed")

	// ErrBufferNotAllocated indicates a cipher envelope whose key or IV
	// buffer is missing, typically a zero-value envelope that was not
	// created with NewCipherEnvelope.
	ErrBufferNotAllocated = errors.New("onioncrypto: cipher buffer not allocated")

	// ErrKeyLength indicates SetKey was called with a buffer whose length
	// differs from the algorithm's fixed key length.
	ErrKeyLength = errors.New("onioncrypto: wrong key length")

	// ErrIVLength indicates SetIV was called with a buffer whose length
	// differs from the algorithm's fixed IV length.
	ErrIVLength = errors.New("onioncrypto: wrong iv length")

	// ErrInitFailure indicates cipher initialization failed: parameters
	// rejected, key or IV not yet set, or the envelope already initialized.
	ErrInitFailure = errors.New("onioncrypto: cipher init failed")

	// ErrNotInitialized indicates Encrypt or Decrypt was called before
	// InitEncrypt or InitDecrypt.
	ErrNotInitialized = errors.New("onioncrypto: cipher not initialized")

	// ErrDirectionMismatch indicates the update entry point for the other
	// direction was called, e.g. Decrypt on an encrypt-initialized envelope.
	ErrDirectionMismatch = errors.New("onioncrypto: cipher direction mismatch")

	// ErrEntropyFailure indicates the strong randomness source could not
	// supply the requested bytes.
	ErrEntropyFailure = errors.New("onioncrypto: entropy source failed")

	// ErrRngFailure indicates the fast randomness tier failed, typically
	// because its one-time seeding from the strong tier failed.
	ErrRngFailure = errors.New("onioncrypto: fast rng failed")

	// ErrDigestFailure indicates the digest provider signaled failure.
	// Effectively unreachable for the fixed-size SHA-1 digest.
	ErrDigestFailure = errors.New("onioncrypto: digest failed")

	// ErrInvalidFilename indicates a key file path containing characters
	// outside the allow-list. Returned before any file I/O occurs.
	ErrInvalidFilename = errors.New("onioncrypto: invalid filename")

	// ErrIOFailure indicates a file or stream operation failed.
	ErrIOFailure = errors.New("onioncrypto: i/o failure")

	// ErrInvalidPadding indicates an unknown asymmetric padding mode.
	ErrInvalidPadding = errors.New("onioncrypto: invalid padding mode")

	// ErrMessageTooLong indicates a plaintext exceeding the key-size-derived
	// maximum for the selected padding mode.
	ErrMessageTooLong = errors.New("onioncrypto: message too long for key size")
)

// CipherError wraps a failure in a cipher envelope operation with the
// operation name and the envelope's algorithm tag.
type CipherError struct {
	Op        string          // operation that failed, e.g. "set_key"
	Algorithm CipherAlgorithm // envelope's algorithm tag
	Err       error           // underlying error
}

func (e *CipherError) Error() string {
	return fmt.Sprintf("onioncrypto: cipher %s %s failed: %v", e.Algorithm, e.Op, e.Err)
}

func (e *CipherError) Unwrap() error {
	return e.Err
}

// newCipherError wraps err with cipher operation context.
func newCipherError(op string, alg CipherAlgorithm, err error) error {
	return &CipherError{Op: op, Algorithm: alg, Err: err}
}

// KeyError wraps a failure in a key envelope operation with the operation
// name and the envelope's algorithm tag.
type KeyError struct {
	Op        string       // operation that failed, e.g. "load_private"
	Algorithm KeyAlgorithm // envelope's algorithm tag
	Err       error        // underlying error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("onioncrypto: %s key %s failed: %v", e.Algorithm, e.Op, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// newKeyError wraps err with key operation context.
func newKeyError(op string, alg KeyAlgorithm, err error) error {
	return &KeyError{Op: op, Algorithm: alg, Err: err}
}
