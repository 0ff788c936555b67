// Package signing implements the public-key and sign operations of the
// service boundary on top of the keyring and the derivation core.
package signing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/altkdf/schnorr-canister/internal/keyring"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/storage"
	"github.com/altkdf/schnorr-canister/internal/util"
)

// PublicKeyRequest asks for the public key derived at a path.
type PublicKeyRequest struct {
	KeyID schnorr.KeyID
	// Principal scopes the derivation; it is prepended as the first segment.
	Principal      schnorr.Principal
	DerivationPath [][]byte
}

// PublicKeyResponse carries the derived public key and chain code.
type PublicKeyResponse struct {
	PublicKey []byte
	ChainCode []byte
}

// SignRequest asks for a signature under the key derived at a path.
type SignRequest struct {
	KeyID          schnorr.KeyID
	Principal      schnorr.Principal
	DerivationPath [][]byte
	Message        []byte
}

// SignResponse carries the signature and the audit request ID.
type SignResponse struct {
	Signature []byte
	RequestID string
}

// Service executes derivation and signing over provisioned root keys.
type Service struct {
	keyring       *keyring.Service
	deriver       *schnorr.Deriver
	counter       storage.CounterStore
	maxPathLength int
}

// NewService creates the signing service.
func NewService(keyringService *keyring.Service, counter storage.CounterStore, maxPathLength int) *Service {
	return &Service{
		keyring:       keyringService,
		deriver:       schnorr.NewDeriver(),
		counter:       counter,
		maxPathLength: maxPathLength,
	}
}

// PublicKey derives the public key and chain code at the requested path.
// The same (key, principal, path) tuple always yields the same result for
// the lifetime of the root seed.
func (s *Service) PublicKey(ctx context.Context, req *PublicKeyRequest) (*PublicKeyResponse, error) {
	if err := s.checkPath(req.DerivationPath); err != nil {
		return nil, err
	}

	seed, err := s.keyring.Seed(ctx, req.KeyID)
	if err != nil {
		return nil, err
	}

	scalar, chainCode, err := schnorr.MasterKeyFromSeed(req.KeyID.Algorithm, seed)
	if err != nil {
		return nil, err
	}

	rootPub, err := schnorr.PublicKeyFromScalar(req.KeyID.Algorithm, scalar)
	if err != nil {
		return nil, err
	}

	res, err := s.deriver.DerivePublicKey(req.KeyID.Algorithm, rootPub, chainCode, s.fullPath(req.Principal, req.DerivationPath))
	if err != nil {
		return nil, err
	}

	return &PublicKeyResponse{
		PublicKey: res.PublicKey,
		ChainCode: res.ChainCode,
	}, nil
}

// Sign derives the private key at the requested path and signs the message.
// The signature verifies against the public key returned by PublicKey for
// the identical (key, principal, path) tuple.
func (s *Service) Sign(ctx context.Context, req *SignRequest) (*SignResponse, error) {
	log := util.LogFromContext(ctx)

	if err := s.checkPath(req.DerivationPath); err != nil {
		return nil, err
	}

	seed, err := s.keyring.Seed(ctx, req.KeyID)
	if err != nil {
		return nil, err
	}

	scalar, chainCode, err := schnorr.MasterKeyFromSeed(req.KeyID.Algorithm, seed)
	if err != nil {
		return nil, err
	}

	childScalar, _, err := s.deriver.DerivePrivateKey(req.KeyID.Algorithm, scalar, chainCode, s.fullPath(req.Principal, req.DerivationPath))
	if err != nil {
		return nil, err
	}

	signature, err := schnorr.Sign(req.KeyID.Algorithm, childScalar, req.Message)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()

	count, err := s.counter.IncrementSigCount(ctx)
	if err != nil {
		// The signature itself succeeded; a broken counter is not worth failing the call.
		log.Warn().Err(err).Msg("Failed to increment signature counter")
	}

	pathDigest := sha256.Sum256(flattenPath(req.DerivationPath))
	log.Info().
		Str("request_id", requestID).
		Str("key_id", req.KeyID.String()).
		Str("principal", req.Principal.String()).
		Str("path_digest", hex.EncodeToString(pathDigest[:8])).
		Int64("sig_count", count).
		Msg("Produced signature")

	return &SignResponse{
		Signature: signature,
		RequestID: requestID,
	}, nil
}

func (s *Service) checkPath(path [][]byte) error {
	if s.maxPathLength > 0 && len(path) > s.maxPathLength {
		return errors.Wrapf(schnorr.ErrInvalidDerivationPath, "path has %d segments, maximum is %d", len(path), s.maxPathLength)
	}
	return nil
}

// fullPath prepends the scoping principal as the first derivation segment.
func (s *Service) fullPath(principal schnorr.Principal, path [][]byte) [][]byte {
	full := make([][]byte, 0, len(path)+1)
	full = append(full, []byte(principal))
	full = append(full, path...)
	return full
}

func flattenPath(path [][]byte) []byte {
	var flat []byte
	for _, segment := range path {
		flat = append(flat, byte(len(segment)))
		flat = append(flat, segment...)
	}
	return flat
}
