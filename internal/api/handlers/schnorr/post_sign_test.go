package schnorr_test

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/test"
	"github.com/altkdf/schnorr-canister/internal/types"
)

func keyID(algorithm string, name string) map[string]interface{} {
	return map[string]interface{}{
		"algorithm": algorithm,
		"name":      name,
	}
}

// fetchPublicKey derives the caller-scoped public key over the API.
func fetchPublicKey(t *testing.T, s *api.Server, algorithm string, name string, path []string) []byte {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/public-key", test.GenericPayload{
		"key_id":          keyID(algorithm, name),
		"derivation_path": path,
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var response types.SchnorrPublicKeyResponse
	test.ParseResponseAndValidate(t, res, &response)

	return []byte(response.PublicKey)
}

func TestPostSignEd25519(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		message := []byte("arbitrary length messages are fine for ed25519")
		path := []string{"AQID"}

		res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", test.GenericPayload{
			"key_id":          keyID("ed25519", "dfx_test_key"),
			"derivation_path": path,
			"message":         base64.StdEncoding.EncodeToString(message),
		}, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var response types.SignWithSchnorrResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Len(t, []byte(response.Signature), schnorr.SignatureSize)

		publicKey := fetchPublicKey(t, s, "ed25519", "dfx_test_key", path)
		ok, err := schnorr.Verify(schnorr.AlgorithmEd25519, publicKey, message, response.Signature)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestPostSignBip340(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		digest := sha256.Sum256([]byte("spend output 0"))
		path := []string{"AQID", "BAUG"}

		res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", test.GenericPayload{
			"key_id":          keyID("bip340secp256k1", "test_key_1"),
			"derivation_path": path,
			"message":         base64.StdEncoding.EncodeToString(digest[:]),
		}, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var response types.SignWithSchnorrResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Len(t, []byte(response.Signature), schnorr.SignatureSize)

		publicKey := fetchPublicKey(t, s, "bip340secp256k1", "test_key_1", path)
		ok, err := schnorr.Verify(schnorr.AlgorithmBip340Secp256k1, publicKey, digest[:], response.Signature)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestPostSignBip340RejectsNonDigestMessage(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", test.GenericPayload{
			"key_id":  keyID("bip340secp256k1", "test_key_1"),
			"message": base64.StdEncoding.EncodeToString([]byte("short")),
		}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code, res.Body.String())
	})
}

func TestPostSignUnknownKey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", test.GenericPayload{
			"key_id":  keyID("ed25519", "no_such_key"),
			"message": base64.StdEncoding.EncodeToString([]byte("hello")),
		}, nil)
		assert.Equal(t, http.StatusNotFound, res.Code, res.Body.String())
	})
}

func TestPostSignRequiresMessage(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", test.GenericPayload{
			"key_id": keyID("ed25519", "dfx_test_key"),
		}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code, res.Body.String())
	})
}

func TestPostSignWithBearerTokenScopesCaller(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		token, err := s.Auth.Generate("em77e-bvlzu-aq")
		require.NoError(t, err)

		headers := http.Header{}
		headers.Set("Authorization", "Bearer "+token)

		message := []byte("per-caller key separation")
		payload := test.GenericPayload{
			"key_id":  keyID("ed25519", "dfx_test_key"),
			"message": base64.StdEncoding.EncodeToString(message),
		}

		resAuthed := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", payload, headers)
		require.Equal(t, http.StatusOK, resAuthed.Code, resAuthed.Body.String())

		var signed types.SignWithSchnorrResponse
		test.ParseResponseAndValidate(t, resAuthed, &signed)

		// The signature must verify against the key scoped to the token's
		// principal, not against the anonymous caller's key.
		anonymousKey := fetchPublicKey(t, s, "ed25519", "dfx_test_key", nil)
		ok, err := schnorr.Verify(schnorr.AlgorithmEd25519, anonymousKey, message, signed.Signature)
		require.NoError(t, err)
		assert.False(t, ok)

		resKey := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/public-key", test.GenericPayload{
			"key_id":      keyID("ed25519", "dfx_test_key"),
			"canister_id": "em77e-bvlzu-aq",
		}, nil)
		require.Equal(t, http.StatusOK, resKey.Code)

		var callerKey types.SchnorrPublicKeyResponse
		test.ParseResponseAndValidate(t, resKey, &callerKey)
		ok, err = schnorr.Verify(schnorr.AlgorithmEd25519, callerKey.PublicKey, message, signed.Signature)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestPostSignRejectsGarbageToken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		headers := http.Header{}
		headers.Set("Authorization", "Bearer not.a.token")

		res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", test.GenericPayload{
			"key_id":  keyID("ed25519", "dfx_test_key"),
			"message": base64.StdEncoding.EncodeToString([]byte("hello")),
		}, headers)
		assert.Equal(t, http.StatusUnauthorized, res.Code, res.Body.String())
	})
}
