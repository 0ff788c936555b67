package schnorr_test

import (
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/test"
	"github.com/altkdf/schnorr-canister/internal/types"
)

func TestGetListKeys(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/schnorr/keys", nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var response types.GetListKeysResponse
		test.ParseResponseAndValidate(t, res, &response)

		// Two algorithms for each of the two default key names.
		require.Len(t, response.Keys, 4)

		seen := map[string]int{}
		for _, key := range response.Keys {
			seen[swag.StringValue(key.Algorithm)]++
			assert.NotEmpty(t, []byte(key.PublicKey))
		}
		assert.Equal(t, 2, seen["ed25519"])
		assert.Equal(t, 2, seen["bip340secp256k1"])
	})
}
