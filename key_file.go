package onioncrypto

import (
	"fmt"
	"os"
	"strings"
)

// File-based key load and write paths.
//
// Key file paths come from configuration that may not be trusted, so every
// path is validated against an explicit character allow-list before the
// file is touched. File handles are acquired in a scope that guarantees
// release on every exit path, including parse and validity-check failures.

// validFilename reports whether path consists only of characters from the
// allow-list.
func validFilename(path string) bool {
	if path == "" {
		return false
	}
	for _, r := range path {
		if !strings.ContainsRune(legalFilenameChars, r) {
			return false
		}
	}
	return true
}

// LoadPrivateFromFile reads, parses and validity-checks a private key from
// the named file. The path is checked against the filename allow-list
// before any file I/O; a key that parses but fails the validity check and
// a check that errors outright are reported distinctly in the log but both
// fail the load.
func (k *KeyEnvelope) LoadPrivateFromFile(path string) error {
	if !validFilename(path) {
		return newKeyError("load_private_file", k.algorithm,
			fmt.Errorf("%w: %q", ErrInvalidFilename, path))
	}

	f, err := os.Open(path)
	if err != nil {
		return newKeyError("load_private_file", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	defer f.Close()

	if err := k.LoadPrivate(f); err != nil {
		log.Errorf("error reading private key from %s: %s", path, LastError())
		return err
	}

	switch k.CheckKey() {
	case KeyCheckValid:
		return nil
	case KeyCheckInvalid:
		log.Errorf("private key read from %s but is invalid: %s", path, LastError())
	case KeyCheckUnchecked:
		log.Errorf("private key read from %s but validity checking failed: %s", path, LastError())
	}
	return newKeyError("load_private_file", k.algorithm, ErrInvalidKey)
}

// WritePrivateToFile serializes the private key to the named file with the
// same filename discipline as LoadPrivateFromFile. The file is created
// with mode 0600.
func (k *KeyEnvelope) WritePrivateToFile(path string) error {
	if !validFilename(path) {
		return newKeyError("write_private_file", k.algorithm,
			fmt.Errorf("%w: %q", ErrInvalidFilename, path))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return newKeyError("write_private_file", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	defer f.Close()

	return k.WritePrivate(f)
}

// WritePublicToFile serializes the public key to the named file with the
// same filename discipline as LoadPrivateFromFile.
func (k *KeyEnvelope) WritePublicToFile(path string) error {
	if !validFilename(path) {
		return newKeyError("write_public_file", k.algorithm,
			fmt.Errorf("%w: %q", ErrInvalidFilename, path))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return newKeyError("write_public_file", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	defer f.Close()

	return k.WritePublic(f)
}

// LoadPublicFromFile reads and parses a public key from the named file.
func (k *KeyEnvelope) LoadPublicFromFile(path string) error {
	if !validFilename(path) {
		return newKeyError("load_public_file", k.algorithm,
			fmt.Errorf("%w: %q", ErrInvalidFilename, path))
	}

	f, err := os.Open(path)
	if err != nil {
		return newKeyError("load_public_file", k.algorithm, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	defer f.Close()

	return k.LoadPublic(f)
}
