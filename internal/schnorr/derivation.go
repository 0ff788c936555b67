package schnorr

import (
	"crypto/hmac"
	"crypto/sha512"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/edwards/v2"
	"github.com/pkg/errors"
)

// ChainCodeSize is the size of every chain code in bytes.
const ChainCodeSize = 32

// SeedSize is the size of a provisioned root seed in bytes.
const SeedSize = 64

// Deriver implements hierarchical child key derivation with opaque
// byte-string path segments. Per segment:
//
//	I  = HMAC-SHA512(chain_code, ser(parent_pub) || segment)
//	IL = int(I[:32]) mod n, IR = I[32:]
//	child_priv = (parent_priv + IL) mod n
//	child_pub  = parent_pub + IL*G
//	child_chain_code = IR
//
// Public and private derivation commute, so a signature under the derived
// private key verifies against the public key derived over public data only.
type Deriver struct{}

// NewDeriver creates a derivation service.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// DerivedKey is the public result of a derivation walk.
type DerivedKey struct {
	PublicKey []byte
	ChainCode []byte
}

// MasterKeyFromSeed computes the root private scalar for a 64-byte seed.
// The root chain code is all zeroes; hierarchical state starts at the seed.
func MasterKeyFromSeed(alg Algorithm, seed []byte) (*big.Int, []byte, error) {
	if len(seed) != SeedSize {
		return nil, nil, errors.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}

	var hmacKey string
	switch alg {
	case AlgorithmBip340Secp256k1:
		hmacKey = "Bitcoin seed"
	case AlgorithmEd25519:
		hmacKey = "ed25519 seed"
	default:
		return nil, nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", alg)
	}

	mac := hmac.New(sha512.New, []byte(hmacKey))
	mac.Write(seed)
	I := mac.Sum(nil)

	order, err := curveOrder(alg)
	if err != nil {
		return nil, nil, err
	}

	scalar := new(big.Int).SetBytes(I[:32])
	scalar.Mod(scalar, order)
	if scalar.Sign() == 0 {
		return nil, nil, errors.Wrap(ErrComputationFailure, "degenerate master key")
	}

	return scalar, make([]byte, ChainCodeSize), nil
}

// PublicKeyFromScalar serializes the public key of a private scalar:
// 33-byte compressed SEC1 for secp256k1, 32-byte point encoding for ed25519.
func PublicKeyFromScalar(alg Algorithm, scalar *big.Int) ([]byte, error) {
	switch alg {
	case AlgorithmBip340Secp256k1:
		priv, _ := btcec.PrivKeyFromBytes(scalarBytes32(scalar))
		return priv.PubKey().SerializeCompressed(), nil
	case AlgorithmEd25519:
		curve := edwards.Edwards()
		x, y := curve.ScalarBaseMult(scalar.Bytes())
		pub := edwards.PublicKey{Curve: curve, X: x, Y: y}
		return pub.Serialize(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", alg)
	}
}

// DerivePublicKey walks the path from a serialized root public key.
// An empty path returns the root key and chain code unchanged.
func (d *Deriver) DerivePublicKey(alg Algorithm, rootPub []byte, rootChainCode []byte, path [][]byte) (*DerivedKey, error) {
	if len(rootChainCode) != ChainCodeSize {
		return nil, errors.Wrap(ErrInvalidDerivationPath, "chain code must be 32 bytes")
	}

	currentPub := rootPub
	currentChainCode := rootChainCode

	for i, segment := range path {
		res, err := d.deriveChildPublic(alg, currentPub, currentChainCode, segment)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive at depth %d", i)
		}
		currentPub = res.PublicKey
		currentChainCode = res.ChainCode
	}

	return &DerivedKey{
		PublicKey: currentPub,
		ChainCode: currentChainCode,
	}, nil
}

// DerivePrivateKey walks the path from the root private scalar, returning the
// child scalar and chain code. It mirrors DerivePublicKey step for step.
func (d *Deriver) DerivePrivateKey(alg Algorithm, rootPriv *big.Int, rootChainCode []byte, path [][]byte) (*big.Int, []byte, error) {
	if rootPriv == nil {
		return nil, nil, errors.New("root private key cannot be nil")
	}
	if len(rootChainCode) != ChainCodeSize {
		return nil, nil, errors.Wrap(ErrInvalidDerivationPath, "chain code must be 32 bytes")
	}

	order, err := curveOrder(alg)
	if err != nil {
		return nil, nil, err
	}

	current := new(big.Int).Set(rootPriv)
	currentChainCode := rootChainCode

	for i, segment := range path {
		parentPub, err := PublicKeyFromScalar(alg, current)
		if err != nil {
			return nil, nil, err
		}

		il, ir, err := computeIL(alg, parentPub, currentChainCode, segment)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to derive at depth %d", i)
		}

		current.Add(current, il)
		current.Mod(current, order)
		if current.Sign() == 0 {
			return nil, nil, errors.Wrapf(ErrComputationFailure, "degenerate child key at depth %d", i)
		}
		currentChainCode = ir
	}

	return current, currentChainCode, nil
}

// deriveChildPublic performs a single derivation step over public data.
func (d *Deriver) deriveChildPublic(alg Algorithm, pub []byte, chainCode []byte, segment []byte) (*DerivedKey, error) {
	switch alg {
	case AlgorithmBip340Secp256k1:
		return deriveSecp256k1(pub, chainCode, segment)
	case AlgorithmEd25519:
		return deriveEd25519(pub, chainCode, segment)
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", alg)
	}
}

// computeIL computes the tweak scalar and child chain code for one segment.
func computeIL(alg Algorithm, serializedPub []byte, chainCode []byte, segment []byte) (*big.Int, []byte, error) {
	if len(chainCode) != ChainCodeSize {
		return nil, nil, errors.Wrap(ErrInvalidDerivationPath, "chain code must be 32 bytes")
	}

	order, err := curveOrder(alg)
	if err != nil {
		return nil, nil, err
	}

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(serializedPub)
	mac.Write(segment)
	I := mac.Sum(nil)

	il := new(big.Int).SetBytes(I[:32])
	il.Mod(il, order)
	if il.Sign() == 0 {
		return nil, nil, errors.Wrap(ErrComputationFailure, "degenerate tweak")
	}

	return il, I[32:], nil
}

func deriveSecp256k1(pub []byte, chainCode []byte, segment []byte) (*DerivedKey, error) {
	parentPub, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse secp256k1 public key")
	}

	il, ir, err := computeIL(AlgorithmBip340Secp256k1, parentPub.SerializeCompressed(), chainCode, segment)
	if err != nil {
		return nil, err
	}

	curve := btcec.S256()
	ilx, ily := curve.ScalarBaseMult(il.Bytes())
	parentECDSA := parentPub.ToECDSA()
	childX, childY := curve.Add(parentECDSA.X, parentECDSA.Y, ilx, ily)

	if childX.Sign() == 0 && childY.Sign() == 0 {
		return nil, errors.Wrap(ErrComputationFailure, "derived point at infinity")
	}

	uncompressed := make([]byte, 65)
	uncompressed[0] = 0x04
	childXBytes := childX.Bytes()
	childYBytes := childY.Bytes()
	copy(uncompressed[33-len(childXBytes):33], childXBytes)
	copy(uncompressed[65-len(childYBytes):65], childYBytes)

	childPub, err := btcec.ParsePubKey(uncompressed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse derived public key")
	}

	return &DerivedKey{
		PublicKey: childPub.SerializeCompressed(),
		ChainCode: ir,
	}, nil
}

func deriveEd25519(pub []byte, chainCode []byte, segment []byte) (*DerivedKey, error) {
	if len(pub) != 32 {
		return nil, errors.New("invalid ed25519 public key length")
	}

	parentPoint, err := edwards.ParsePubKey(pub)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ed25519 public key")
	}

	il, ir, err := computeIL(AlgorithmEd25519, pub, chainCode, segment)
	if err != nil {
		return nil, err
	}

	curve := edwards.Edwards()
	ilx, ily := curve.ScalarBaseMult(il.Bytes())
	childX, childY := curve.Add(parentPoint.X, parentPoint.Y, ilx, ily)

	childPoint := edwards.PublicKey{
		Curve: curve,
		X:     childX,
		Y:     childY,
	}

	return &DerivedKey{
		PublicKey: childPoint.Serialize(),
		ChainCode: ir,
	}, nil
}

func curveOrder(alg Algorithm) (*big.Int, error) {
	switch alg {
	case AlgorithmBip340Secp256k1:
		return btcec.S256().N, nil
	case AlgorithmEd25519:
		return edwards.Edwards().N, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", alg)
	}
}

// scalarBytes32 left-pads a scalar to 32 bytes big endian.
func scalarBytes32(scalar *big.Int) []byte {
	b := scalar.Bytes()
	if len(b) == 32 {
		return b
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
