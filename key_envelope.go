package onioncrypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"go.step.sm/crypto/pemutil"
)

// Key envelope operations.
//
// Keys travel as PEM-armored PKCS#1 blocks ("RSA PRIVATE KEY" /
// "RSA PUBLIC KEY"), byte-compatible with keys written by peers and with
// stored key files. Private-key parsing delegates to go.step.sm/crypto's
// pemutil, which also accepts PKCS#8 armor for keys produced by other
// tooling; everything written by this layer is PKCS#1.

const (
	pemTypeRSAPrivate = "RSA PRIVATE KEY"
	pemTypeRSAPublic  = "RSA PUBLIC KEY"
	pemTypePublic     = "PUBLIC KEY"
)

// DefaultKeyBits is the modulus size used when generating keypairs for
// circuit and identity keys.
const DefaultKeyBits = 1024

// Generate replaces any existing key material with a freshly generated
// keypair of the given modulus size. The public exponent is fixed at
// 65537. Any previously held key is dropped before the attempt, so a
// failure leaves the envelope empty rather than holding a stale key.
func (k *KeyEnvelope) Generate(bits int) error {
	k.priv = nil
	k.pub = nil

	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		recordProviderError("generate_key", err)
		return newKeyError("generate", k.algorithm, fmt.Errorf("%w: %v", ErrGenerationFailure, err))
	}
	k.priv = priv
	k.pub = &priv.PublicKey
	return nil
}

// LoadPrivate parses a PEM-encoded private key block from src, replacing
// any existing key material.
func (k *KeyEnvelope) LoadPrivate(src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return newKeyError("load_private", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}

	// Drop any existing material before the attempt; a failed load leaves
	// the envelope empty, never holding a stale key.
	k.priv = nil
	k.pub = nil

	parsed, err := pemutil.Parse(data)
	if err != nil {
		recordProviderError("load_private", err)
		return newKeyError("load_private", k.algorithm, fmt.Errorf("%w: %v", ErrParseFailure, err))
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return newKeyError("load_private", k.algorithm, ErrUnsupportedAlgorithm)
	}

	k.priv = priv
	k.pub = &priv.PublicKey
	return nil
}

// LoadPublic parses a PEM-encoded public key block from src, replacing any
// existing key material. Only the public component is loaded.
func (k *KeyEnvelope) LoadPublic(src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return newKeyError("load_public", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	return k.PublicFromBuffer(data)
}

// WritePrivate serializes the private key to dst as a PEM PKCS#1 block.
func (k *KeyEnvelope) WritePrivate(dst io.Writer) error {
	if k.priv == nil {
		if k.pub != nil {
			return newKeyError("write_private", k.algorithm, ErrNoPrivateComponent)
		}
		return newKeyError("write_private", k.algorithm, ErrNoKeyLoaded)
	}
	block := &pem.Block{
		Type:  pemTypeRSAPrivate,
		Bytes: x509.MarshalPKCS1PrivateKey(k.priv),
	}
	if err := pem.Encode(dst, block); err != nil {
		return newKeyError("write_private", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	return nil
}

// WritePublic serializes the public key to dst as a PEM PKCS#1 block.
func (k *KeyEnvelope) WritePublic(dst io.Writer) error {
	if k.pub == nil {
		return newKeyError("write_public", k.algorithm, ErrNoKeyLoaded)
	}
	block := &pem.Block{
		Type:  pemTypeRSAPublic,
		Bytes: x509.MarshalPKCS1PublicKey(k.pub),
	}
	if err := pem.Encode(dst, block); err != nil {
		return newKeyError("write_public", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	return nil
}

// PublicToBuffer serializes the public key to an owned byte buffer in the
// same PEM encoding WritePublic produces, via a growable in-memory sink.
func (k *KeyEnvelope) PublicToBuffer() ([]byte, error) {
	sink := NewStream(nil)
	if err := k.WritePublic(sink); err != nil {
		return nil, err
	}
	out := make([]byte, sink.Len())
	copy(out, sink.Bytes())
	return out, nil
}

// PublicFromBuffer parses a PEM-encoded public key block from an in-memory
// buffer, replacing any existing key material. The inverse of
// PublicToBuffer.
func (k *KeyEnvelope) PublicFromBuffer(data []byte) error {
	k.priv = nil
	k.pub = nil

	block, _ := pem.Decode(data)
	if block == nil {
		return newKeyError("read_public", k.algorithm, fmt.Errorf("%w: no PEM block found", ErrParseFailure))
	}

	var pub *rsa.PublicKey
	switch block.Type {
	case pemTypeRSAPublic:
		p, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			recordProviderError("read_public", err)
			return newKeyError("read_public", k.algorithm, fmt.Errorf("%w: %v", ErrParseFailure, err))
		}
		pub = p
	case pemTypePublic:
		// PKIX armor from other tooling; still has to carry an RSA key.
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			recordProviderError("read_public", err)
			return newKeyError("read_public", k.algorithm, fmt.Errorf("%w: %v", ErrParseFailure, err))
		}
		p, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return newKeyError("read_public", k.algorithm, ErrUnsupportedAlgorithm)
		}
		pub = p
	default:
		return newKeyError("read_public", k.algorithm,
			fmt.Errorf("%w: unexpected PEM block %q", ErrParseFailure, block.Type))
	}

	k.pub = pub
	return nil
}

// CheckKey runs the provider's structural validity check on the private
// key. It returns KeyCheckUnchecked when no private component is present,
// KeyCheckInvalid when the key is well-formed but fails the check, and
// KeyCheckValid otherwise. The failure detail is recorded in the
// process-wide last-error slot.
func (k *KeyEnvelope) CheckKey() KeyCheckResult {
	if k.priv == nil {
		return KeyCheckUnchecked
	}
	if err := k.priv.Validate(); err != nil {
		recordProviderError("check_key", err)
		return KeyCheckInvalid
	}
	return KeyCheckValid
}

// Compare totally orders the public components of two envelopes: modulus
// first, then public exponent. It returns KeyIncomparable when the
// algorithms differ or either public component is absent.
func (k *KeyEnvelope) Compare(other *KeyEnvelope) KeyComparison {
	if k == nil || other == nil || k.pub == nil || other.pub == nil {
		return KeyIncomparable
	}
	if k.algorithm != other.algorithm {
		return KeyIncomparable
	}

	switch c := k.pub.N.Cmp(other.pub.N); {
	case c < 0:
		return KeyLess
	case c > 0:
		return KeyGreater
	}
	switch {
	case k.pub.E < other.pub.E:
		return KeyLess
	case k.pub.E > other.pub.E:
		return KeyGreater
	}
	return KeyEqual
}

// KeySize returns the byte length of the modulus.
func (k *KeyEnvelope) KeySize() (int, error) {
	if k.pub == nil {
		return 0, newKeyError("key_size", k.algorithm, ErrNoKeyLoaded)
	}
	return (k.pub.N.BitLen() + 7) / 8, nil
}

// PublicEncrypt encrypts plaintext with the public key under the given
// padding mode. The ciphertext length equals KeySize; plaintexts over the
// padding-derived maximum fail with ErrMessageTooLong.
func (k *KeyEnvelope) PublicEncrypt(plaintext []byte, padding Padding) ([]byte, error) {
	if k.pub == nil {
		return nil, newKeyError("public_encrypt", k.algorithm, ErrNoKeyLoaded)
	}

	var out []byte
	var err error
	switch padding {
	case PaddingPKCS1:
		out, err = rsa.EncryptPKCS1v15(rand.Reader, k.pub, plaintext)
	case PaddingOAEP:
		out, err = rsa.EncryptOAEP(sha1.New(), rand.Reader, k.pub, plaintext, nil)
	default:
		return nil, newKeyError("public_encrypt", k.algorithm, ErrInvalidPadding)
	}
	if err != nil {
		recordProviderError("public_encrypt", err)
		if errors.Is(err, rsa.ErrMessageTooLong) {
			return nil, newKeyError("public_encrypt", k.algorithm, ErrMessageTooLong)
		}
		return nil, newKeyError("public_encrypt", k.algorithm, err)
	}
	return out, nil
}

// PrivateDecrypt decrypts ciphertext with the private key under the given
// padding mode. It fails with ErrNoPrivateComponent when only the public
// half is present.
func (k *KeyEnvelope) PrivateDecrypt(ciphertext []byte, padding Padding) ([]byte, error) {
	if k.pub == nil {
		return nil, newKeyError("private_decrypt", k.algorithm, ErrNoKeyLoaded)
	}
	if k.priv == nil {
		return nil, newKeyError("private_decrypt", k.algorithm, ErrNoPrivateComponent)
	}

	var out []byte
	var err error
	switch padding {
	case PaddingPKCS1:
		out, err = rsa.DecryptPKCS1v15(rand.Reader, k.priv, ciphertext)
	case PaddingOAEP:
		out, err = rsa.DecryptOAEP(sha1.New(), rand.Reader, k.priv, ciphertext, nil)
	default:
		return nil, newKeyError("private_decrypt", k.algorithm, ErrInvalidPadding)
	}
	if err != nil {
		recordProviderError("private_decrypt", err)
		return nil, newKeyError("private_decrypt", k.algorithm, err)
	}
	return out, nil
}
