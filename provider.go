package onioncrypto

import (
	"sync"
)

// Provider boundary adapter.
//
// The underlying primitives provider (the standard library plus
// golang.org/x/crypto) reports failures through ordinary error returns,
// but historical providers for this layer signaled through a process-wide
// error channel that had to be read immediately after a failing call, and
// some provider versions did not signal at all. Every provider-backed call
// in this package funnels its failure through recordProviderError, which
// normalizes the outcome to a single error return and mirrors the failure
// text into a process-wide last-error slot for diagnostics.
//
// The slot is shared mutable state: under concurrent callers a LastError
// reading is not attributable to a specific caller's failure. It is guarded
// by its own mutex so readings are at least internally consistent.

var (
	lastErrMu sync.Mutex
	lastErr   string
)

// recordProviderError stores err as the process-wide last provider error
// and returns err unchanged so call sites can wrap and propagate it.
func recordProviderError(op string, err error) error {
	if err == nil {
		return nil
	}
	lastErrMu.Lock()
	lastErr = err.Error()
	lastErrMu.Unlock()
	log.Debugf("provider failure in %s: %v", op, err)
	return err
}

// LastError returns a human-readable description of the most recent
// failure recorded from the provider, or the empty string if none has
// been recorded. Diagnostic only: readings are not attributable to a
// specific caller under concurrency.
func LastError() string {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	return lastErr
}
