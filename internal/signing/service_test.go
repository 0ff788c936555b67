package signing_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/keyring"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/signing"
	"github.com/altkdf/schnorr-canister/internal/storage"
)

func newTestService(t *testing.T) (*signing.Service, *storage.InMemoryStore) {
	t.Helper()

	store := storage.NewInMemoryStore()
	keyringService := keyring.NewService(store, []string{"dfx_test_key", "test_key_1"})
	require.NoError(t, keyringService.EnsureProvisioned(context.Background()))

	return signing.NewService(keyringService, store, 255), store
}

func anonymous(t *testing.T) schnorr.Principal {
	t.Helper()
	p, err := schnorr.PrincipalFromText("2vxsx-fae")
	require.NoError(t, err)
	return p
}

func testMessage(alg schnorr.Algorithm) []byte {
	if alg == schnorr.AlgorithmBip340Secp256k1 {
		digest := sha256.Sum256([]byte("hello"))
		return digest[:]
	}
	return []byte("hello")
}

func TestPublicKeyDeterminism(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	req := &signing.PublicKeyRequest{
		KeyID:          schnorr.KeyID{Algorithm: schnorr.AlgorithmEd25519, Name: "test_key_1"},
		Principal:      anonymous(t),
		DerivationPath: [][]byte{[]byte("app"), []byte("user-1")},
	}

	first, err := svc.PublicKey(ctx, req)
	require.NoError(t, err)
	second, err := svc.PublicKey(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.PublicKey, second.PublicKey)
	assert.Equal(t, first.ChainCode, second.ChainCode)
	assert.Len(t, first.ChainCode, schnorr.ChainCodeSize)
}

func TestSignatureVerifiesAgainstDerivedPublicKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, alg := range schnorr.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			keyID := schnorr.KeyID{Algorithm: alg, Name: "dfx_test_key"}
			path := [][]byte{[]byte("wallet"), {0x00, 0x01}}
			message := testMessage(alg)

			pubRes, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{
				KeyID:          keyID,
				Principal:      anonymous(t),
				DerivationPath: path,
			})
			require.NoError(t, err)

			signRes, err := svc.Sign(ctx, &signing.SignRequest{
				KeyID:          keyID,
				Principal:      anonymous(t),
				DerivationPath: path,
				Message:        message,
			})
			require.NoError(t, err)
			assert.Len(t, signRes.Signature, schnorr.SignatureSize)
			assert.NotEmpty(t, signRes.RequestID)

			ok, err := schnorr.Verify(alg, pubRes.PublicKey, message, signRes.Signature)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestEmptyPathYieldsPrincipalScopedRootKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	keyID := schnorr.KeyID{Algorithm: schnorr.AlgorithmBip340Secp256k1, Name: "test_key_1"}

	withEmptyPath, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{
		KeyID:     keyID,
		Principal: anonymous(t),
	})
	require.NoError(t, err)

	withNilPath, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{
		KeyID:          keyID,
		Principal:      anonymous(t),
		DerivationPath: [][]byte{},
	})
	require.NoError(t, err)

	assert.Equal(t, withEmptyPath.PublicKey, withNilPath.PublicKey)
	assert.Equal(t, withEmptyPath.ChainCode, withNilPath.ChainCode)
}

func TestDifferentPrincipalsYieldDifferentKeys(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	keyID := schnorr.KeyID{Algorithm: schnorr.AlgorithmEd25519, Name: "test_key_1"}

	a, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{
		KeyID:     keyID,
		Principal: anonymous(t),
	})
	require.NoError(t, err)

	b, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{
		KeyID:     keyID,
		Principal: schnorr.Principal([]byte{0xab, 0xcd}),
	})
	require.NoError(t, err)

	assert.NotEqual(t, a.PublicKey, b.PublicKey)
}

func TestUnknownKeyErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	keyID := schnorr.KeyID{Algorithm: schnorr.AlgorithmEd25519, Name: "unprovisioned"}

	_, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{KeyID: keyID, Principal: anonymous(t)})
	assert.ErrorIs(t, err, schnorr.ErrUnknownKey)

	_, err = svc.Sign(ctx, &signing.SignRequest{
		KeyID:     keyID,
		Principal: anonymous(t),
		Message:   []byte("hello"),
	})
	assert.ErrorIs(t, err, schnorr.ErrUnknownKey)
}

func TestPathDepthLimit(t *testing.T) {
	ctx := context.Background()

	store := storage.NewInMemoryStore()
	keyringService := keyring.NewService(store, []string{"test_key_1"})
	require.NoError(t, keyringService.EnsureProvisioned(ctx))
	svc := signing.NewService(keyringService, store, 2)

	keyID := schnorr.KeyID{Algorithm: schnorr.AlgorithmEd25519, Name: "test_key_1"}
	tooDeep := [][]byte{[]byte("a"), []byte("b"), []byte("c")}

	_, err := svc.PublicKey(ctx, &signing.PublicKeyRequest{
		KeyID:          keyID,
		Principal:      anonymous(t),
		DerivationPath: tooDeep,
	})
	assert.ErrorIs(t, err, schnorr.ErrInvalidDerivationPath)

	_, err = svc.Sign(ctx, &signing.SignRequest{
		KeyID:          keyID,
		Principal:      anonymous(t),
		DerivationPath: tooDeep,
		Message:        []byte("hello"),
	})
	assert.ErrorIs(t, err, schnorr.ErrInvalidDerivationPath)
}

func TestSignIncrementsSigCount(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	keyID := schnorr.KeyID{Algorithm: schnorr.AlgorithmEd25519, Name: "dfx_test_key"}

	for i := 0; i < 3; i++ {
		_, err := svc.Sign(ctx, &signing.SignRequest{
			KeyID:     keyID,
			Principal: anonymous(t),
			Message:   []byte("hello"),
		})
		require.NoError(t, err)
	}

	count, err := store.GetSigCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestSignBip340RequiresDigestMessage(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Sign(ctx, &signing.SignRequest{
		KeyID:     schnorr.KeyID{Algorithm: schnorr.AlgorithmBip340Secp256k1, Name: "dfx_test_key"},
		Principal: anonymous(t),
		Message:   []byte("not a digest"),
	})
	assert.ErrorIs(t, err, schnorr.ErrInvalidMessage)

	// Failed signing attempts must not bump the counter.
	count, err := store.GetSigCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
