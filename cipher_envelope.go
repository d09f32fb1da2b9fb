package onioncrypto

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"fmt"
)

// Cipher envelope operations.
//
// The engine for every supported algorithm is a cipher.Stream: DES and
// 3DES wrapped in OFB mode, RC4 natively, and a pass-through stream for
// the identity algorithm. That keeps every update length-preserving and
// lets one envelope carry one continuous keystream across calls.

// identityStream is the engine for CipherAlgIdentity: a keystream of
// zeros, i.e. pass-through.
type identityStream struct{}

func (identityStream) XORKeyStream(dst, src []byte) {
	copy(dst, src)
}

// newEngine builds the keystream engine for the envelope's algorithm from
// its key and IV buffers.
func (c *CipherEnvelope) newEngine() (cipher.Stream, error) {
	switch c.algorithm {
	case CipherAlgIdentity:
		return identityStream{}, nil
	case CipherAlgDES:
		block, err := des.NewCipher(c.key)
		if err != nil {
			return nil, err
		}
		return cipher.NewOFB(block, c.iv), nil
	case CipherAlgRC4:
		// The IV buffer exists for envelope uniformity only; RC4 keys the
		// stream from the key bytes alone.
		return rc4.NewCipher(c.key)
	case CipherAlg3DES:
		// Two-key EDE: the 16-byte envelope key expands to K1|K2|K1.
		k := make([]byte, 0, 24)
		k = append(k, c.key...)
		k = append(k, c.key[:8]...)
		block, err := des.NewTripleDESCipher(k)
		if err != nil {
			return nil, err
		}
		return cipher.NewOFB(block, c.iv), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// SetKey copies exactly KeyLength bytes into the envelope's key buffer.
// Zero-length algorithms accept an empty key. Wrong-length input is
// rejected, never truncated or overread.
func (c *CipherEnvelope) SetKey(key []byte) error {
	p, ok := cipherTable[c.algorithm]
	if !ok {
		return newCipherError("set_key", c.algorithm, ErrUnsupportedAlgorithm)
	}
	if p.keyLen == 0 {
		if len(key) != 0 {
			return newCipherError("set_key", c.algorithm,
				fmt.Errorf("%w: got %d, want 0", ErrKeyLength, len(key)))
		}
		c.keySet = true
		return nil
	}
	if c.key == nil {
		return newCipherError("set_key", c.algorithm, ErrBufferNotAllocated)
	}
	if len(key) != p.keyLen {
		return newCipherError("set_key", c.algorithm,
			fmt.Errorf("%w: got %d, want %d", ErrKeyLength, len(key), p.keyLen))
	}
	copy(c.key, key)
	c.keySet = true
	return nil
}

// SetIV copies exactly IVLength bytes into the envelope's IV buffer.
// Zero-length algorithms accept an empty IV.
func (c *CipherEnvelope) SetIV(iv []byte) error {
	p, ok := cipherTable[c.algorithm]
	if !ok {
		return newCipherError("set_iv", c.algorithm, ErrUnsupportedAlgorithm)
	}
	if p.ivLen == 0 {
		if len(iv) != 0 {
			return newCipherError("set_iv", c.algorithm,
				fmt.Errorf("%w: got %d, want 0", ErrIVLength, len(iv)))
		}
		c.ivSet = true
		return nil
	}
	if c.iv == nil {
		return newCipherError("set_iv", c.algorithm, ErrBufferNotAllocated)
	}
	if len(iv) != p.ivLen {
		return newCipherError("set_iv", c.algorithm,
			fmt.Errorf("%w: got %d, want %d", ErrIVLength, len(iv), p.ivLen))
	}
	copy(c.iv, iv)
	c.ivSet = true
	return nil
}

// GenerateKey fills the key buffer from the cryptographically strong
// randomness tier. No-op success for zero-length algorithms.
func (c *CipherEnvelope) GenerateKey() error {
	p, ok := cipherTable[c.algorithm]
	if !ok {
		return newCipherError("generate_key", c.algorithm, ErrUnsupportedAlgorithm)
	}
	if p.keyLen == 0 {
		c.keySet = true
		return nil
	}
	if c.key == nil {
		return newCipherError("generate_key", c.algorithm, ErrBufferNotAllocated)
	}
	key, err := StrongRand(p.keyLen)
	if err != nil {
		return newCipherError("generate_key", c.algorithm, err)
	}
	copy(c.key, key)
	c.keySet = true
	return nil
}

// InitEncrypt binds the key and IV buffers into the engine for the
// encrypt direction. An envelope initializes exactly once; initializing
// an already initialized (or released) envelope fails.
func (c *CipherEnvelope) InitEncrypt() error {
	return c.initDirection(cipherEncrypting, "init_encrypt")
}

// InitDecrypt binds the key and IV buffers into the engine for the
// decrypt direction.
func (c *CipherEnvelope) InitDecrypt() error {
	return c.initDirection(cipherDecrypting, "init_decrypt")
}

func (c *CipherEnvelope) initDirection(dir cipherState, op string) error {
	p, ok := cipherTable[c.algorithm]
	if !ok {
		return newCipherError(op, c.algorithm, ErrUnsupportedAlgorithm)
	}
	if c.state != cipherUninitialized {
		return newCipherError(op, c.algorithm,
			fmt.Errorf("%w: already initialized", ErrInitFailure))
	}
	if p.keyLen > 0 && !c.keySet {
		return newCipherError(op, c.algorithm,
			fmt.Errorf("%w: key not set", ErrInitFailure))
	}
	if p.ivLen > 0 && !c.ivSet {
		return newCipherError(op, c.algorithm,
			fmt.Errorf("%w: iv not set", ErrInitFailure))
	}

	engine, err := c.newEngine()
	if err != nil {
		recordProviderError(op, err)
		return newCipherError(op, c.algorithm, fmt.Errorf("%w: %v", ErrInitFailure, err))
	}
	c.engine = engine
	c.state = dir
	return nil
}

// Encrypt advances the keystream over in and returns the equal-length
// ciphertext. Valid only on an encrypt-initialized envelope; sequential
// calls continue the same cipher stream.
func (c *CipherEnvelope) Encrypt(in []byte) ([]byte, error) {
	return c.update(in, cipherEncrypting, "encrypt")
}

// Decrypt advances the keystream over in and returns the equal-length
// plaintext. Valid only on a decrypt-initialized envelope.
func (c *CipherEnvelope) Decrypt(in []byte) ([]byte, error) {
	return c.update(in, cipherDecrypting, "decrypt")
}

func (c *CipherEnvelope) update(in []byte, dir cipherState, op string) ([]byte, error) {
	switch c.state {
	case dir:
	case cipherUninitialized:
		return nil, newCipherError(op, c.algorithm, ErrNotInitialized)
	case cipherReleased:
		return nil, newCipherError(op, c.algorithm, ErrNotInitialized)
	default:
		return nil, newCipherError(op, c.algorithm, ErrDirectionMismatch)
	}

	out := make([]byte, len(in))
	c.engine.XORKeyStream(out, in)
	return out, nil
}

// NewCipherEnvelopeInit is the composite constructor: create, SetKey,
// SetIV and initialize for the chosen direction in one step. Any failure
// releases all partial state and returns a single error; a half
// initialized envelope is never handed out.
func NewCipherEnvelopeInit(alg CipherAlgorithm, key, iv []byte, encrypt bool) (*CipherEnvelope, error) {
	c, err := NewCipherEnvelope(alg)
	if err != nil {
		log.Errorf("unable to allocate cipher envelope: %v", err)
		return nil, err
	}

	if err := c.SetKey(key); err != nil {
		log.Errorf("unable to set key: %v", err)
		c.Release()
		return nil, err
	}
	if err := c.SetIV(iv); err != nil {
		log.Errorf("unable to set iv: %v", err)
		c.Release()
		return nil, err
	}

	if encrypt {
		err = c.InitEncrypt()
	} else {
		err = c.InitDecrypt()
	}
	if err != nil {
		log.Errorf("unable to initialize cipher: %v", err)
		c.Release()
		return nil, err
	}
	return c, nil
}
