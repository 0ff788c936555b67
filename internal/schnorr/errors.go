package schnorr

import "github.com/pkg/errors"

// Sentinel errors of the key-derivation and signing contract. Callers are
// expected to test with errors.Is after unwrapping.
var (
	// ErrUnknownKey signals that the requested root key name is not provisioned.
	ErrUnknownKey = errors.New("unknown root key")

	// ErrUnsupportedAlgorithm signals an algorithm tag outside the closed set.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidDerivationPath signals a path violating depth or format limits.
	ErrInvalidDerivationPath = errors.New("invalid derivation path")

	// ErrInvalidMessage signals a message the algorithm cannot sign,
	// e.g. a non-32-byte digest for bip340secp256k1.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrComputationFailure signals that the underlying cryptographic
	// operation could not complete.
	ErrComputationFailure = errors.New("computation failure")
)
