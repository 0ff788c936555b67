package schnorr

import (
	"strings"

	"github.com/pkg/errors"
)

// Algorithm selects the Schnorr signature variant of a root key.
type Algorithm string

const (
	// AlgorithmEd25519 is EdDSA over edwards25519 (RFC 8032).
	AlgorithmEd25519 Algorithm = "ed25519"
	// AlgorithmBip340Secp256k1 is Schnorr over secp256k1 per BIP-340.
	AlgorithmBip340Secp256k1 Algorithm = "bip340secp256k1"
)

// Algorithms returns the closed set of supported algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmEd25519, AlgorithmBip340Secp256k1}
}

// ParseAlgorithm validates an algorithm tag at the interface boundary.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(s)) {
	case AlgorithmEd25519:
		return AlgorithmEd25519, nil
	case AlgorithmBip340Secp256k1:
		return AlgorithmBip340Secp256k1, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", s)
	}
}

func (a Algorithm) String() string {
	return string(a)
}

// KeyID identifies a provisioned root key, scoped by algorithm.
type KeyID struct {
	Algorithm Algorithm
	Name      string
}

func (k KeyID) String() string {
	return string(k.Algorithm) + ":" + k.Name
}
