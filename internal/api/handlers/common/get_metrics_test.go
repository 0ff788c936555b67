package common_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/test"
	"github.com/altkdf/schnorr-canister/internal/types"
)

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		assert.Contains(t, res.Header().Get("Content-Type"), "application/json")

		var response types.MetricsResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.EqualValues(t, 0, swag.Int64Value(response.SigCount))
		assert.EqualValues(t, 4, swag.Int64Value(response.KeyCount))
		assert.GreaterOrEqual(t, swag.Int64Value(response.UptimeSeconds), int64(0))
	})
}

func TestGetMetricsOnRootCountsSignatures(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"key_id": map[string]interface{}{
				"algorithm": "ed25519",
				"name":      "dfx_test_key",
			},
			"message": base64.StdEncoding.EncodeToString([]byte("count me")),
		}

		for i := 0; i < 3; i++ {
			res := test.PerformRequest(t, s, "POST", "/api/v1/schnorr/sign", payload, nil)
			require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		}

		res := test.PerformRequest(t, s, "GET", "/", nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var response types.MetricsResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.EqualValues(t, 3, swag.Int64Value(response.SigCount))
	})
}
