package onioncrypto

import (
	"bytes"
)

// Stream is a growable in-memory byte sink and source used where the layer
// serializes key material to a buffer instead of a file: PublicToBuffer
// writes PEM armor into a Stream and copies the result out.
//
// It wraps bytes.Buffer, so it satisfies io.Reader and io.Writer and can be
// passed to the stream-based load and write operations directly.
type Stream struct {
	*bytes.Buffer
}

// NewStream creates a new Stream initialized with the provided bytes.
// Pass nil for an empty sink.
func NewStream(buf []byte) *Stream {
	return &Stream{bytes.NewBuffer(buf)}
}
