package csrf

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Algorithm identifies the digest used inside the HMAC that signs a certificate.
type Algorithm string

const (
	// RIPEMD160 is the historical default. It is kept so tokens minted by older
	// deployments keep verifying, but new deployments should pick SHA256.
	RIPEMD160  Algorithm = "ripemd160"
	SHA1       Algorithm = "sha1"
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b256 Algorithm = "blake2b-256"
	BLAKE2b512 Algorithm = "blake2b-512"
)

// DefaultAlgorithm is used when Config.Algorithm is empty.
const DefaultAlgorithm = RIPEMD160

var algorithms = map[Algorithm]func() hash.Hash{
	RIPEMD160: ripemd160.New,
	SHA1:      sha1.New,
	SHA256:    sha256.New,
	SHA384:    sha512.New384,
	SHA512:    sha512.New,
	SHA3_256:  sha3.New256,
	SHA3_512:  sha3.New512,
	BLAKE2b256: func() hash.Hash {
		// New256 only fails for keys longer than 64 bytes; it is unkeyed here.
		h, _ := blake2b.New256(nil)
		return h
	},
	BLAKE2b512: func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
}

// Algorithms returns every supported identifier.
func Algorithms() []Algorithm {
	return []Algorithm{
		RIPEMD160, SHA1, SHA256, SHA384, SHA512,
		SHA3_256, SHA3_512, BLAKE2b256, BLAKE2b512,
	}
}

// ParseAlgorithm converts a configuration string into an Algorithm.
// Matching is case-insensitive; an empty string yields DefaultAlgorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultAlgorithm, nil
	}
	alg := Algorithm(s)
	if _, ok := algorithms[alg]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
	return alg, nil
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// Weak reports whether a is only kept for compatibility.
func (a Algorithm) Weak() bool {
	return a == RIPEMD160 || a == SHA1
}

func (a Algorithm) String() string { return string(a) }

func (a Algorithm) hasher() (func() hash.Hash, error) {
	h, ok := algorithms[a]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}
	return h, nil
}
