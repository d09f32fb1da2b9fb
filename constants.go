package onioncrypto

// Algorithm and parameter constants for the crypto envelope layer.
//
// The layer exposes a closed, table-driven set of algorithm tags. Every
// per-algorithm size (key length, IV length) lives in one parameter table
// so that adding an algorithm means adding a tag plus a table entry, not
// a new branch scattered across call sites.

// LibraryVersion identifies this release of the envelope layer.
const LibraryVersion = "0.1.0"

// KeyAlgorithm tags an asymmetric key envelope with its algorithm family.
type KeyAlgorithm int

const (
	// KeyAlgRSA is the RSA-class asymmetric algorithm. It is currently the
	// only supported asymmetric family.
	KeyAlgRSA KeyAlgorithm = iota
)

// String returns a short human-readable name for the key algorithm.
func (a KeyAlgorithm) String() string {
	switch a {
	case KeyAlgRSA:
		return "rsa"
	default:
		return "unknown"
	}
}

// CipherAlgorithm tags a symmetric cipher envelope with its algorithm.
type CipherAlgorithm int

const (
	// CipherAlgIdentity passes data through unchanged. Zero-length key and IV.
	CipherAlgIdentity CipherAlgorithm = iota
	// CipherAlgDES is single DES in OFB mode. 8-byte key, 8-byte IV.
	CipherAlgDES
	// CipherAlgRC4 is the RC4 stream cipher. 16-byte key; the 16-byte IV is
	// accepted for envelope uniformity but does not enter the keystream.
	CipherAlgRC4
	// CipherAlg3DES is two-key triple DES (EDE) in OFB mode.
	// 16-byte key, 8-byte IV.
	CipherAlg3DES
)

// cipherParams is the per-algorithm parameter table entry.
type cipherParams struct {
	name   string
	keyLen int
	ivLen  int
}

var cipherTable = map[CipherAlgorithm]cipherParams{
	CipherAlgIdentity: {name: "identity", keyLen: 0, ivLen: 0},
	CipherAlgDES:      {name: "des-ofb", keyLen: 8, ivLen: 8},
	CipherAlgRC4:      {name: "rc4", keyLen: 16, ivLen: 16},
	CipherAlg3DES:     {name: "3des-ede-ofb", keyLen: 16, ivLen: 8},
}

// String returns a short human-readable name for the cipher algorithm.
func (a CipherAlgorithm) String() string {
	if p, ok := cipherTable[a]; ok {
		return p.name
	}
	return "unknown"
}

// KeyLength returns the fixed key length in bytes for the algorithm,
// or -1 for an unknown tag.
func (a CipherAlgorithm) KeyLength() int {
	if p, ok := cipherTable[a]; ok {
		return p.keyLen
	}
	return -1
}

// IVLength returns the fixed IV length in bytes for the algorithm,
// or -1 for an unknown tag.
func (a CipherAlgorithm) IVLength() int {
	if p, ok := cipherTable[a]; ok {
		return p.ivLen
	}
	return -1
}

// Padding selects the asymmetric padding mode for PublicEncrypt and
// PrivateDecrypt.
type Padding int

const (
	// PaddingPKCS1 is RSA PKCS#1 v1.5 padding.
	PaddingPKCS1 Padding = iota
	// PaddingOAEP is RSA OAEP padding with SHA-1.
	PaddingOAEP
)

// KeyCheckResult is the three-valued outcome of KeyEnvelope.CheckKey.
//
// "Parses but is cryptographically invalid" is a distinct, actionable
// condition from "the check could not run at all", so this is deliberately
// not a boolean.
type KeyCheckResult int

const (
	// KeyCheckValid means the private key passed the structural check.
	KeyCheckValid KeyCheckResult = iota
	// KeyCheckInvalid means the key is well-formed but failed the check.
	KeyCheckInvalid
	// KeyCheckUnchecked means the check could not run, e.g. because no
	// private component is loaded.
	KeyCheckUnchecked
)

// KeyComparison is the outcome of KeyEnvelope.Compare. Ordering is total
// over comparable keys: modulus first, then public exponent.
type KeyComparison int

const (
	KeyLess    KeyComparison = -1
	KeyEqual   KeyComparison = 0
	KeyGreater KeyComparison = 1
	// KeyIncomparable is returned when the envelopes carry different
	// algorithms or either public component is absent.
	KeyIncomparable KeyComparison = 2
)

// legalFilenameChars is the allow-list of characters accepted in key file
// paths. Paths containing anything else are rejected before any file I/O,
// as a defense against path injection from untrusted configuration.
const legalFilenameChars = "#%&+-_0123456789@ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz./"

// DigestLen is the fixed output length in bytes of Digest (SHA-1).
const DigestLen = 20
