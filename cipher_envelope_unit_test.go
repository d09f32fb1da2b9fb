package onioncrypto

import (
	"errors"
	"testing"
)

// TestCipherWrongLengths checks that SetKey and SetIV reject buffers of
// the wrong length instead of truncating or overreading.
func TestCipherWrongLengths(t *testing.T) {
	cases := []struct {
		name string
		alg  CipherAlgorithm
		key  []byte
		iv   []byte
	}{
		{"des short key", CipherAlgDES, make([]byte, 7), make([]byte, 8)},
		{"des long key", CipherAlgDES, make([]byte, 9), make([]byte, 8)},
		{"des short iv", CipherAlgDES, make([]byte, 8), make([]byte, 4)},
		{"rc4 long key", CipherAlgRC4, make([]byte, 32), make([]byte, 16)},
		{"3des wrong iv", CipherAlg3DES, make([]byte, 16), make([]byte, 16)},
		{"identity nonempty key", CipherAlgIdentity, make([]byte, 1), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCipherEnvelope(tc.alg)
			if err != nil {
				t.Fatalf("create envelope: %v", err)
			}
			defer c.Release()

			keyErr := c.SetKey(tc.key)
			ivErr := c.SetIV(tc.iv)
			if keyErr == nil && ivErr == nil {
				t.Fatal("wrong-length parameters were accepted")
			}
			if keyErr != nil && !errors.Is(keyErr, ErrKeyLength) {
				t.Errorf("SetKey error = %v, want ErrKeyLength", keyErr)
			}
			if ivErr != nil && !errors.Is(ivErr, ErrIVLength) {
				t.Errorf("SetIV error = %v, want ErrIVLength", ivErr)
			}
		})
	}
}

// TestCipherStateMachine checks the one-shot init state machine: update
// before init fails, double init fails, and the entry point for the other
// direction is rejected.
func TestCipherStateMachine(t *testing.T) {
	key, iv := cipherTestKey(t, CipherAlgRC4)

	t.Run("update before init", func(t *testing.T) {
		c, err := NewCipherEnvelope(CipherAlgRC4)
		if err != nil {
			t.Fatalf("create envelope: %v", err)
		}
		defer c.Release()

		if _, err := c.Encrypt([]byte("too early")); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("Encrypt before init = %v, want ErrNotInitialized", err)
		}
	})

	t.Run("init without key", func(t *testing.T) {
		c, err := NewCipherEnvelope(CipherAlgDES)
		if err != nil {
			t.Fatalf("create envelope: %v", err)
		}
		defer c.Release()

		if err := c.InitEncrypt(); !errors.Is(err, ErrInitFailure) {
			t.Errorf("InitEncrypt without key = %v, want ErrInitFailure", err)
		}
	})

	t.Run("double init", func(t *testing.T) {
		c, err := NewCipherEnvelopeInit(CipherAlgRC4, key, iv, true)
		if err != nil {
			t.Fatalf("composite create: %v", err)
		}
		defer c.Release()

		if err := c.InitEncrypt(); !errors.Is(err, ErrInitFailure) {
			t.Errorf("second InitEncrypt = %v, want ErrInitFailure", err)
		}
		if err := c.InitDecrypt(); !errors.Is(err, ErrInitFailure) {
			t.Errorf("InitDecrypt after InitEncrypt = %v, want ErrInitFailure", err)
		}
	})

	t.Run("direction mismatch", func(t *testing.T) {
		c, err := NewCipherEnvelopeInit(CipherAlgRC4, key, iv, true)
		if err != nil {
			t.Fatalf("composite create: %v", err)
		}
		defer c.Release()

		if _, err := c.Decrypt([]byte("wrong way")); !errors.Is(err, ErrDirectionMismatch) {
			t.Errorf("Decrypt on encrypt envelope = %v, want ErrDirectionMismatch", err)
		}
	})

	t.Run("update after release", func(t *testing.T) {
		c, err := NewCipherEnvelopeInit(CipherAlgRC4, key, iv, true)
		if err != nil {
			t.Fatalf("composite create: %v", err)
		}
		c.Release()
		if _, err := c.Encrypt([]byte("gone")); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("Encrypt after release = %v, want ErrNotInitialized", err)
		}
	})
}

// TestCipherZeroValueEnvelope checks that a zero-value envelope, which
// never had its buffers allocated, is rejected instead of crashing.
func TestCipherZeroValueEnvelope(t *testing.T) {
	var c CipherEnvelope // identity tag, nil buffers

	c.algorithm = CipherAlgDES
	if err := c.SetKey(make([]byte, 8)); !errors.Is(err, ErrBufferNotAllocated) {
		t.Errorf("SetKey on zero-value envelope = %v, want ErrBufferNotAllocated", err)
	}
	if err := c.SetIV(make([]byte, 8)); !errors.Is(err, ErrBufferNotAllocated) {
		t.Errorf("SetIV on zero-value envelope = %v, want ErrBufferNotAllocated", err)
	}
	if err := c.GenerateKey(); !errors.Is(err, ErrBufferNotAllocated) {
		t.Errorf("GenerateKey on zero-value envelope = %v, want ErrBufferNotAllocated", err)
	}
}

// TestCipherUnknownAlgorithm checks the closed-set boundary.
func TestCipherUnknownAlgorithm(t *testing.T) {
	if _, err := NewCipherEnvelope(CipherAlgorithm(7)); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("NewCipherEnvelope(7) = %v, want ErrUnsupportedAlgorithm", err)
	}
}

// TestCipherReleaseIdempotent checks that Release tolerates partial
// construction and repeated calls.
func TestCipherReleaseIdempotent(t *testing.T) {
	c, err := NewCipherEnvelope(CipherAlg3DES)
	if err != nil {
		t.Fatalf("create envelope: %v", err)
	}
	c.Release()
	c.Release()

	var nilEnv *CipherEnvelope
	nilEnv.Release()
}
