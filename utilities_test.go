package onioncrypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestDigest checks the fixed 20-byte SHA-1 output against a known vector.
func TestDigest(t *testing.T) {
	got, err := Digest([]byte("abc"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if len(got) != DigestLen {
		t.Fatalf("digest length = %d, want %d", len(got), DigestLen)
	}

	want, _ := hex.DecodeString("a9993e364706816aba3e25717850c26c9cd0d89d")
	if !bytes.Equal(got, want) {
		t.Errorf("Digest(abc) = %x, want %x", got, want)
	}

	empty, err := Digest(nil)
	if err != nil {
		t.Fatalf("Digest(nil): %v", err)
	}
	wantEmpty, _ := hex.DecodeString("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	if !bytes.Equal(empty, wantEmpty) {
		t.Errorf("Digest(nil) = %x, want %x", empty, wantEmpty)
	}
}

// TestStrongRand checks lengths and that consecutive draws differ.
func TestStrongRand(t *testing.T) {
	a, err := StrongRand(32)
	if err != nil {
		t.Fatalf("StrongRand: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("StrongRand length = %d, want 32", len(a))
	}
	b, err := StrongRand(32)
	if err != nil {
		t.Fatalf("StrongRand: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two strong draws returned identical bytes")
	}

	zero, err := StrongRand(0)
	if err != nil || len(zero) != 0 {
		t.Errorf("StrongRand(0) = %v, %v", zero, err)
	}
}

// TestFastRand checks the fast tier produces distinct output across calls
// (one continuous keystream, never repeating the same position).
func TestFastRand(t *testing.T) {
	a, err := FastRand(64)
	if err != nil {
		t.Fatalf("FastRand: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("FastRand length = %d, want 64", len(a))
	}
	b, err := FastRand(64)
	if err != nil {
		t.Fatalf("FastRand: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two fast draws returned identical bytes")
	}
	if bytes.Equal(a, make([]byte, 64)) {
		t.Error("fast draw returned all zeros")
	}
}

// TestLastError checks that provider failures land in the process-wide
// last-error slot.
func TestLastError(t *testing.T) {
	k, err := NewKeyEnvelope(KeyAlgRSA)
	if err != nil {
		t.Fatalf("create envelope: %v", err)
	}
	defer k.Release()

	// A syntactically valid PEM block with a garbage payload reaches the
	// provider's parser and must be recorded.
	block := "-----BEGIN RSA PUBLIC KEY-----\nAAAA\n-----END RSA PUBLIC KEY-----\n"
	if err := k.PublicFromBuffer([]byte(block)); err == nil {
		t.Fatal("garbage payload parsed successfully")
	}
	if LastError() == "" {
		t.Error("provider failure left the last-error slot empty")
	}
}

// TestStreamSink checks the in-memory sink used for buffer serialization.
func TestStreamSink(t *testing.T) {
	s := NewStream(nil)
	if _, err := s.Write([]byte("armor")); err != nil {
		t.Fatalf("stream write: %v", err)
	}
	if s.Len() != 5 {
		t.Errorf("stream length = %d, want 5", s.Len())
	}
	if !bytes.Equal(s.Bytes(), []byte("armor")) {
		t.Error("stream contents mismatch")
	}

	preloaded := NewStream([]byte("seed"))
	out := make([]byte, 4)
	if _, err := preloaded.Read(out); err != nil {
		t.Fatalf("stream read: %v", err)
	}
	if !bytes.Equal(out, []byte("seed")) {
		t.Error("preloaded stream read mismatch")
	}
}
