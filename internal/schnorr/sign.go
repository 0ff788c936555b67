package schnorr

import (
	"crypto/sha512"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcschnorr "github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/edwards/v2"
	"github.com/pkg/errors"
)

// SignatureSize is the size of a signature for both algorithms.
const SignatureSize = 64

// Bip340DigestSize is the required message length for bip340secp256k1.
// BIP-340 signs 32-byte digests; hashing is the caller's business.
const Bip340DigestSize = 32

// Sign produces a deterministic signature over message with the given
// private scalar. For bip340secp256k1 the message must be a 32-byte digest;
// for ed25519 the message may have arbitrary length.
func Sign(alg Algorithm, scalar *big.Int, message []byte) ([]byte, error) {
	switch alg {
	case AlgorithmBip340Secp256k1:
		return signBip340(scalar, message)
	case AlgorithmEd25519:
		return signEd25519(scalar, message)
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", alg)
	}
}

// Verify checks a signature against a serialized public key as returned by
// PublicKeyFromScalar or DerivePublicKey.
func Verify(alg Algorithm, publicKey []byte, message []byte, signature []byte) (bool, error) {
	switch alg {
	case AlgorithmBip340Secp256k1:
		return verifyBip340(publicKey, message, signature)
	case AlgorithmEd25519:
		return verifyEd25519(publicKey, message, signature)
	default:
		return false, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", alg)
	}
}

func signBip340(scalar *big.Int, message []byte) ([]byte, error) {
	if len(message) != Bip340DigestSize {
		return nil, errors.Wrapf(ErrInvalidMessage, "message must be a %d-byte digest, got %d bytes", Bip340DigestSize, len(message))
	}

	priv, _ := btcec.PrivKeyFromBytes(scalarBytes32(scalar))
	sig, err := btcschnorr.Sign(priv, message)
	if err != nil {
		return nil, errors.Wrap(ErrComputationFailure, err.Error())
	}

	return sig.Serialize(), nil
}

func verifyBip340(publicKey []byte, message []byte, signature []byte) (bool, error) {
	pub, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to parse secp256k1 public key")
	}

	sig, err := btcschnorr.ParseSignature(signature)
	if err != nil {
		return false, errors.Wrap(err, "failed to parse schnorr signature")
	}

	return sig.Verify(message, pub), nil
}

// signEd25519 signs with a raw scalar. Seed-based RFC 8032 signing does not
// apply to hierarchically derived keys, so the nonce is derived from the
// scalar and the message instead of the seed prefix. The resulting signature
// is a standard ed25519 signature.
func signEd25519(scalar *big.Int, message []byte) ([]byte, error) {
	curve := edwards.Edwards()

	a := new(big.Int).Mod(scalar, curve.N)
	if a.Sign() == 0 {
		return nil, errors.Wrap(ErrComputationFailure, "degenerate private key")
	}

	ax, ay := curve.ScalarBaseMult(a.Bytes())
	aEnc := (&edwards.PublicKey{Curve: curve, X: ax, Y: ay}).Serialize()

	// Deterministic nonce: k = SHA-512(scalar || message) mod l.
	nonceHash := sha512.New()
	nonceHash.Write(scalarBytes32(a))
	nonceHash.Write(message)
	k := new(big.Int).SetBytes(nonceHash.Sum(nil))
	k.Mod(k, curve.N)
	if k.Sign() == 0 {
		return nil, errors.Wrap(ErrComputationFailure, "degenerate nonce")
	}

	rx, ry := curve.ScalarBaseMult(k.Bytes())
	rEnc := (&edwards.PublicKey{Curve: curve, X: rx, Y: ry}).Serialize()

	h := challengeEd25519(rEnc, aEnc, message, curve.N)

	// S = (k + h*a) mod l
	s := new(big.Int).Mul(h, a)
	s.Add(s, k)
	s.Mod(s, curve.N)

	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, rEnc...)
	sig = append(sig, littleEndian32(s)...)
	return sig, nil
}

func verifyEd25519(publicKey []byte, message []byte, signature []byte) (bool, error) {
	if len(signature) != SignatureSize {
		return false, errors.Errorf("signature must be %d bytes, got %d", SignatureSize, len(signature))
	}

	curve := edwards.Edwards()

	pub, err := edwards.ParsePubKey(publicKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to parse ed25519 public key")
	}

	r, err := edwards.ParsePubKey(signature[:32])
	if err != nil {
		return false, nil
	}

	s := littleEndianToInt(signature[32:])
	if s.Sign() == 0 || s.Cmp(curve.N) >= 0 {
		return false, nil
	}

	h := challengeEd25519(signature[:32], publicKey, message, curve.N)

	// Accept iff S*G == R + h*A.
	sgx, sgy := curve.ScalarBaseMult(s.Bytes())
	hax, hay := curve.ScalarMult(pub.X, pub.Y, h.Bytes())
	rhx, rhy := curve.Add(r.X, r.Y, hax, hay)

	return sgx.Cmp(rhx) == 0 && sgy.Cmp(rhy) == 0, nil
}

// challengeEd25519 computes RFC 8032's h = SHA-512(R || A || M) interpreted
// as a little endian integer, reduced mod l.
func challengeEd25519(rEnc, aEnc, message []byte, order *big.Int) *big.Int {
	hash := sha512.New()
	hash.Write(rEnc)
	hash.Write(aEnc)
	hash.Write(message)
	h := littleEndianToInt(hash.Sum(nil))
	return h.Mod(h, order)
}

func littleEndianToInt(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(rev)
}

func littleEndian32(x *big.Int) []byte {
	be := scalarBytes32(x)
	le := make([]byte, 32)
	for i, v := range be {
		le[31-i] = v
	}
	return le
}
